package llm

var (
	ValidateResponse  = validateResponse
	BuildGeminiSchema = buildGeminiSchema
)
