package domain

type Client struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// UnknownClientLabel is shown for rentals whose client was deleted.
func UnknownClientLabel(lang Language) string {
	if lang == LanguageEnglish {
		return "Unknown Client"
	}
	return "Cliente Desconocido"
}
