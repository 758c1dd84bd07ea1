package reservation

const dateLayout = "2006-01-02"

// CreateReservationRequest asks for an item on a calendar day. Dates use
// the YYYY-MM-DD layout.
type CreateReservationRequest struct {
	RequesterID   int64   `json:"-"`
	EquipmentID   int64   `json:"equipment_id" validate:"required,gt=0"`
	RequestedDate string  `json:"requested_date" validate:"required"`
	ReturnDate    *string `json:"return_date"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required"`
}
