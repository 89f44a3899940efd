package export

// Dataset defines tabular export content. Rows map header label to the
// rendered cell text; Headers fixes the column order.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
