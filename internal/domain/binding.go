package domain

// Term — значение привязки в строке результата (uri, literal, bnode).
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Row — одна строка результата: именованные привязки; отсутствующие OPTIONAL-привязки в ней не представлены.
type Row map[string]Term

// Value — строковое значение привязки; ("", false), если привязки нет.
func (r Row) Value(name string) (string, bool) {
	t, ok := r[name]
	if !ok {
		return "", false
	}
	return t.Value, true
}
