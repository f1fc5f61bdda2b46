package models

type WorkingHours struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

type Doctor struct {
	ID              string        `json:"id" bson:"_id"`
	Name            string        `json:"name" bson:"name"`
	WorkingHours    *WorkingHours `json:"workingHours,omitempty" bson:"workingHours,omitempty"`
	ConsultationFee float64       `json:"consultationFee" bson:"consultationFee"`
}
