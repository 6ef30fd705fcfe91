package secop2

import (
	"fmt"
	"strings"
)

// escape doubles single quotes so a term can be placed inside a quoted SoQL
// literal, and trims surrounding whitespace.
func escape(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "'", "''"))
}

// splitTerms breaks a comma separated field value into escaped terms,
// dropping pieces that are empty after trimming. Input order is kept.
func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	var terms []string
	for _, piece := range strings.Split(s, ",") {
		if piece = escape(piece); piece != "" {
			terms = append(terms, piece)
		}
	}
	return terms
}

var partialMatchColumns = []struct {
	value  func(*Filter) string
	column string
}{
	{func(f *Filter) string { return f.Entity }, "entidad"},
	{func(f *Filter) string { return f.Department }, "departamento_entidad"},
	{func(f *Filter) string { return f.City }, "ciudad_entidad"},
	{func(f *Filter) string { return f.Modality }, "modalidad_de_contratacion"},
}

// Where builds the SoQL $where predicate for the filter. Fields that are
// absent, or empty after term splitting, contribute no clause; a filter with
// no effective fields yields the empty string.
func (f *Filter) Where() string {
	var conds []string

	if ids := splitTerms(f.ProcessID); len(ids) > 0 {
		for i, id := range ids {
			ids[i] = "'" + id + "'"
		}
		conds = append(conds, fmt.Sprintf("proceso_de_compra IN (%s)", strings.Join(ids, ", ")))
	}

	for _, pm := range partialMatchColumns {
		terms := splitTerms(pm.value(f))
		if len(terms) == 0 {
			continue
		}
		ors := make([]string, len(terms))
		for i, term := range terms {
			ors[i] = fmt.Sprintf("upper(%s) like upper('%%%s%%')", pm.column, term)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if estado := escape(f.Status); estado != "" {
		conds = append(conds, fmt.Sprintf("estado_del_procedimiento = '%s'", estado))
	}
	if apertura := escape(f.OpeningStatus); apertura != "" {
		conds = append(conds, fmt.Sprintf("estado_de_apertura_del_proceso = '%s'", apertura))
	}

	if fecha := escape(f.StartDate); fecha != "" {
		conds = append(conds, fmt.Sprintf("fecha_de_publicacion_del >= '%sT00:00:00'", fecha))
	}
	if fecha := escape(f.EndDate); fecha != "" {
		conds = append(conds, fmt.Sprintf("fecha_de_publicacion_del <= '%sT23:59:59'", fecha))
	}

	return strings.Join(conds, " AND ")
}
