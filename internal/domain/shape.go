package domain

// Shape — форма запроса к каталогу.
type Shape string

const (
	ShapeFilms  Shape = "films"
	ShapeGenres Shape = "genres"
)

// Field — поле записи и имя привязки (binding), из которой оно читается.
type Field struct {
	Name    string
	Binding string
}

// FieldSpec — фиксированный упорядоченный список полей для формы запроса.
type FieldSpec []Field

// FilmFields — поля списка фильмов: film, title, director, date, genres.
var FilmFields = FieldSpec{
	{Name: "film", Binding: "film"},
	{Name: "title", Binding: "filmLabel"},
	{Name: "director", Binding: "directorLabel"},
	{Name: "date", Binding: "latestDate"},
	{Name: "genres", Binding: "genres"},
}

// GenreFields — поля списка жанров: id, label.
var GenreFields = FieldSpec{
	{Name: "id", Binding: "genre"},
	{Name: "label", Binding: "genreLabel"},
}

// Fields — спецификация полей для формы.
func (s Shape) Fields() FieldSpec {
	switch s {
	case ShapeFilms:
		return FilmFields
	case ShapeGenres:
		return GenreFields
	default:
		return nil
	}
}

// Names — имена полей в порядке спецификации.
func (fs FieldSpec) Names() []string {
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, f.Name)
	}
	return names
}

// ShapeFromPath — форма запроса по пути ресурса ("/films", "/genres").
func ShapeFromPath(path string) (Shape, bool) {
	switch path {
	case "/" + string(ShapeFilms):
		return ShapeFilms, true
	case "/" + string(ShapeGenres):
		return ShapeGenres, true
	default:
		return "", false
	}
}
