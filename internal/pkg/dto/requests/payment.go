package requests

type SubmitPayment struct {
	Method           string `json:"method" validate:"required,oneof=bkash card gateway"`
	WalletNumber     string `json:"wallet_number" validate:"required_if=Method bkash,max=20"`
	TransactionID    string `json:"transaction_id" validate:"required_if=Method bkash,max=64"`
	CardLast4        string `json:"card_last4" validate:"required_if=Method card,max=4"`
	CardHolderName   string `json:"card_holder_name" validate:"required_if=Method card,max=100"`
	GatewayReference string `json:"gateway_reference" validate:"required_if=Method gateway,max=128"`
}
