package secop2 // import "kastelo.dev/secop2"

// Filter describes one query against the SECOP II open data set. Multi-value
// fields take comma separated terms; dates are calendar days on the form
// 2006-01-02. Zero valued fields are not part of the query.
type Filter struct {
	ProcessID     string // proceso_de_compra, exact, multi-value
	Entity        string // entidad, partial match, multi-value
	Department    string // departamento_entidad, partial match, multi-value
	City          string // ciudad_entidad, partial match, multi-value
	Modality      string // modalidad_de_contratacion, partial match, multi-value
	Status        string // estado_del_procedimiento, exact
	OpeningStatus string // estado_de_apertura_del_proceso, exact
	StartDate     string // fecha_de_publicacion_del lower bound, inclusive
	EndDate       string // fecha_de_publicacion_del upper bound, inclusive
}

// Table is a fetched result set. All rows have one cell per column.
type Table struct {
	Columns []string
	Rows    [][]string
}
