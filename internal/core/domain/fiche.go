package domain

import "time"

// FicheStatus represents the lifecycle state of a fiche.
// Any status may replace any other; there is no transition table.
type FicheStatus string

const (
	StatusNew        FicheStatus = "NEW"
	StatusAssigned   FicheStatus = "ASSIGNED"
	StatusInProgress FicheStatus = "IN_PROGRESS"
	StatusClosed     FicheStatus = "CLOSED"
)

// Statuses lists every known status in display order.
var Statuses = []FicheStatus{StatusNew, StatusAssigned, StatusInProgress, StatusClosed}

// Valid reports whether s is one of the known statuses.
func (s FicheStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether the fiche still needs work.
func (s FicheStatus) Active() bool {
	return s == StatusNew || s == StatusAssigned || s == StatusInProgress
}

// Product is the insurance line a fiche is about.
type Product string

const (
	ProductAuto  Product = "AUTO"
	ProductMRH   Product = "MRH"
	ProductRCPro Product = "RCPRO"
	// SANTE and VIE are reserved: priced in analytics but not offered yet.
	ProductSante Product = "SANTE"
	ProductVie   Product = "VIE"
)

// OfferedProducts are the products a fiche can currently be opened for.
var OfferedProducts = []Product{ProductAuto, ProductMRH, ProductRCPro}

// UnassignedAdvisorName is shown in listings when a fiche has no resolvable advisor.
const UnassignedAdvisorName = "Non assigné"

// Fiche is a client insurance record.
type Fiche struct {
	ID         string      `json:"id" bson:"_id"`
	ClientName string      `json:"clientName" bson:"client_name"`
	Phone      string      `json:"phone" bson:"phone"`
	Email      string      `json:"email" bson:"email"`
	Product    Product     `json:"product" bson:"product"`
	Status     FicheStatus `json:"status" bson:"status"`
	AdvisorID  *string     `json:"advisorId" bson:"advisor_id"`
	Type       string      `json:"type" bson:"type"`
	Garanties  []string    `json:"garanties" bson:"garanties"`
	Prime      float64     `json:"prime" bson:"prime"`
	CreatedAt  time.Time   `json:"createdAt" bson:"created_at"`
}

// AssignedTo reports whether the fiche is owned by the given user id.
func (f Fiche) AssignedTo(userID string) bool {
	return f.AdvisorID != nil && *f.AdvisorID == userID
}

// Clone returns a deep copy of the fiche.
func (f Fiche) Clone() Fiche {
	if f.AdvisorID != nil {
		id := *f.AdvisorID
		f.AdvisorID = &id
	}
	if f.Garanties != nil {
		f.Garanties = append([]string(nil), f.Garanties...)
	}
	return f
}
