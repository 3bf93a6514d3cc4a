package leads

// Lead is the canonical view of a CRM prospect record.
//
// It is derived on each fetch and discarded after use; nothing stores Leads.
// Every field is a plain string and never empty-by-accident: absent upstream
// values are mapped to "" so downstream consumers need no nil checks.
type Lead struct {
	RecordID     string `json:"recordId"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Campaign     string `json:"campaign"`
	Adset        string `json:"adset"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
	SubStatus    string `json:"subStatus"`
	City         string `json:"city"`
	Source       string `json:"source"`
	WhatsappURL  string `json:"whatsappUrl"`
	Company      string `json:"company"`
}
