package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type ProductEvent struct {
	ID        string           `json:"id"`
	Product   *ProductResponse `json:"product,omitempty"`
	PublicIDs []string         `json:"public_ids,omitempty"`
}
