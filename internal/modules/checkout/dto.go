package checkout

type CheckInRequest struct {
	Condition string `json:"condition" validate:"required"`
}
