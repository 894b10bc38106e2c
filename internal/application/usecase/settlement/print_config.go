package settlement

// PrintConfig is the supplier block printed on settlement documents.
type PrintConfig struct {
	BusinessNumber string `json:"business_number"`
	CompanyName    string `json:"company_name"`
	OwnerName      string `json:"owner_name"`
	Address        string `json:"address"`
	BusinessType   string `json:"business_type"`
	ItemType       string `json:"item_type"`
}

// GetPrintConfigUseCase serves the configured supplier block.
type GetPrintConfigUseCase struct {
	config PrintConfig
}

// NewGetPrintConfigUseCase creates a new GetPrintConfigUseCase instance.
func NewGetPrintConfigUseCase(config PrintConfig) *GetPrintConfigUseCase {
	return &GetPrintConfigUseCase{config: config}
}

// Execute returns a copy of the supplier block.
func (uc *GetPrintConfigUseCase) Execute() PrintConfig {
	return uc.config
}
