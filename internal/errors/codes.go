package errors

// Códigos de erro devolvidos no campo "error" das respostas.
// Formato: CATEGORIA_DETALHE. O frontend mapeia mensagens a partir do código.

const (
	// ==================== Autenticação (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login necessário
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // e-mail ou senha inválidos
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expirado
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // token inválido
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revogado (logout)
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // e-mail já cadastrado

	// ==================== Validação (VALIDATION_) ====================
	ValidationInvalidInput         = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID            = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat        = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange         = "VALIDATION_INVALID_RANGE"
	ValidationRequired             = "VALIDATION_REQUIRED"
	ValidationConfirmationRequired = "VALIDATION_CONFIRMATION_REQUIRED" // exclusão sem confirm=true

	// ==================== Recursos (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catálogo (PRODUCT_ / OPTION_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY"
	ProductVariantNotFound = "PRODUCT_VARIANT_NOT_FOUND"
	OptionNotFound         = "OPTION_NOT_FOUND"
	OptionInvalidType      = "OPTION_INVALID_TYPE"

	// ==================== Carrinho (CART_) ====================
	CartOutOfStock   = "CART_OUT_OF_STOCK"   // produto sem estoque
	CartLineNotFound = "CART_LINE_NOT_FOUND" // item não está no carrinho
	CartEmpty        = "CART_EMPTY"          // checkout com carrinho vazio

	// ==================== Personalizador (CUSTOMIZER_) ====================
	CustomizerWrongStep = "CUSTOMIZER_WRONG_STEP" // opção fora da etapa atual

	// ==================== Vendas (SALE_) ====================
	SaleNotFound      = "SALE_NOT_FOUND"
	SaleInvalidStatus = "SALE_INVALID_STATUS"

	// ==================== Blog (ARTICLE_) ====================
	ArticleNotFound = "ARTICLE_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Erros internos (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
