package domain

// WarmUpRequest — запрос на прогрев кэша: URI запроса к каталогу (путь и query-строка).
type WarmUpRequest struct {
	RequestURI string `json:"request_uri"`
}
