package secop2

import (
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	table := &Table{
		Columns: []string{"id", "entidad"},
		Rows: [][]string{
			{"1", "Alcaldía de Bogotá"},
			{"2", "valor, con coma"},
		},
	}

	var b strings.Builder
	if err := table.WriteCSV(&b); err != nil {
		t.Fatal(err)
	}

	expected := "id,entidad\n1,Alcaldía de Bogotá\n2,\"valor, con coma\"\n"
	if b.String() != expected {
		t.Errorf("got\n%s\nexpected\n%s", b.String(), expected)
	}
}
