package entity

// Party representa al emisor (Sender) o al cliente (Client) de un documento.
// Todos los campos son texto libre; el dominio no valida formato de BTW ni de email.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
	VATNumber string `json:"vatNumber,omitempty"`
	Email     string `json:"email,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"` // data URL u otro handle opaco
}

// DefaultSender devuelve los valores de ejemplo con los que arranca el emisor.
func DefaultSender() Party {
	return Party{
		Name:      "UW BEDRIJFSNAAM",
		Address:   "Adresregel 1",
		Zip:       "1000",
		City:      "Brussel",
		Country:   "België",
		VATNumber: "BE ",
		Email:     "info@bedrijf.be",
	}
}

// DefaultClient devuelve un cliente vacío (solo el país viene rellenado).
func DefaultClient() Party {
	return Party{Country: "België"}
}
