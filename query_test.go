package secop2

import (
	"reflect"
	"testing"
)

func TestSplitTerms(t *testing.T) {
	cases := []struct {
		in  string
		out []string
	}{
		{
			"",
			nil,
		}, {
			"a, b ,,c",
			[]string{"a", "b", "c"},
		}, {
			"  solo  ",
			[]string{"solo"},
		}, {
			"O'Brien, D'Angelo",
			[]string{"O''Brien", "D''Angelo"},
		}, {
			" , ,",
			nil,
		},
	}

	for _, tc := range cases {
		res := splitTerms(tc.in)
		if !reflect.DeepEqual(res, tc.out) {
			t.Errorf("splitTerms(%q) -> %#v, expected %#v", tc.in, res, tc.out)
		}
	}
}

func TestEscape(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"", ""},
		{"Bogotá", "Bogotá"},
		{"O'Brien", "O''Brien"},
		{"  padded  ", "padded"},
		{"it''s", "it''''s"},
	}

	for _, tc := range cases {
		if res := escape(tc.in); res != tc.out {
			t.Errorf("escape(%q) -> %q, expected %q", tc.in, res, tc.out)
		}
	}
}

func TestWhere(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		out    string
	}{
		{
			"empty",
			Filter{},
			"",
		}, {
			"process ids",
			Filter{ProcessID: "CO1.123, CO1.456"},
			"proceso_de_compra IN ('CO1.123', 'CO1.456')",
		}, {
			"entity partial match",
			Filter{Entity: "alcaldía, O'Brien"},
			"(upper(entidad) like upper('%alcaldía%') OR upper(entidad) like upper('%O''Brien%'))",
		}, {
			"single city",
			Filter{City: "Medellín"},
			"(upper(ciudad_entidad) like upper('%Medellín%'))",
		}, {
			"status",
			Filter{Status: "Adjudicado"},
			"estado_del_procedimiento = 'Adjudicado'",
		}, {
			"opening status",
			Filter{OpeningStatus: "Abierto"},
			"estado_de_apertura_del_proceso = 'Abierto'",
		}, {
			"date range",
			Filter{StartDate: "2024-01-01", EndDate: "2024-06-30"},
			"fecha_de_publicacion_del >= '2024-01-01T00:00:00' AND fecha_de_publicacion_del <= '2024-06-30T23:59:59'",
		}, {
			"blank terms contribute nothing",
			Filter{Entity: " , ,", Status: "   "},
			"",
		}, {
			"clause order is fixed",
			Filter{
				ProcessID:     "P1",
				Entity:        "ent",
				Department:    "dep",
				City:          "ciu",
				Modality:      "mod",
				Status:        "est",
				OpeningStatus: "ape",
				StartDate:     "2024-01-01",
				EndDate:       "2024-12-31",
			},
			"proceso_de_compra IN ('P1')" +
				" AND (upper(entidad) like upper('%ent%'))" +
				" AND (upper(departamento_entidad) like upper('%dep%'))" +
				" AND (upper(ciudad_entidad) like upper('%ciu%'))" +
				" AND (upper(modalidad_de_contratacion) like upper('%mod%'))" +
				" AND estado_del_procedimiento = 'est'" +
				" AND estado_de_apertura_del_proceso = 'ape'" +
				" AND fecha_de_publicacion_del >= '2024-01-01T00:00:00'" +
				" AND fecha_de_publicacion_del <= '2024-12-31T23:59:59'",
		},
	}

	for _, tc := range cases {
		if res := tc.filter.Where(); res != tc.out {
			t.Errorf("%s: got\n%s\nexpected\n%s", tc.name, res, tc.out)
		}
	}
}
