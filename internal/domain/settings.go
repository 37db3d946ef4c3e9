package domain

type Language string

const (
	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

const (
	SettingsID               = 1
	DefaultNextInvoiceNumber = 1001
)

// Settings is the singleton business profile. NextInvoiceNumber is the folio
// the next rental will receive.
type Settings struct {
	ID                int      `json:"id"`
	BusinessName      string   `json:"businessName"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	LogoBase64        string   `json:"logoBase64"`
	NextInvoiceNumber int      `json:"nextInvoiceNumber"`
	Language          Language `json:"language"`
}

func DefaultSettings() Settings {
	return Settings{
		ID:                SettingsID,
		NextInvoiceNumber: DefaultNextInvoiceNumber,
		Language:          LanguageSpanish,
	}
}

func (l Language) Valid() bool {
	return l == LanguageSpanish || l == LanguageEnglish
}
