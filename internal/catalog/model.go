package catalog

// AppointmentOption is one treatment's catalog entry: the full list of
// bookable times for a generic day, before any bookings are subtracted.
type AppointmentOption struct {
	ID    string   `dynamodbav:"id" json:"_id"`
	Name  string   `dynamodbav:"name" json:"name"`
	Price float64  `dynamodbav:"price" json:"price"`
	Slots []string `dynamodbav:"slots" json:"slots"`
}

// Specialty is the id+name projection of an option.
type Specialty struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
