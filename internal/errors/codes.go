package errors

// Error code constants shared with the admin frontend.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_ / VARIANT_ / BUNDLE_) ====================
	ProductNotFound          = "PRODUCT_NOT_FOUND"
	VariantNotFound          = "VARIANT_NOT_FOUND"
	VariantSKUExists         = "VARIANT_SKU_EXISTS"
	VariantStockNotTracked   = "VARIANT_STOCK_NOT_TRACKED"
	BundleIncompleteFields   = "BUNDLE_INCOMPLETE_FIELDS"
	BundleSelfReference      = "BUNDLE_SELF_REFERENCE"
	BundleDuplicateComponent = "BUNDLE_DUPLICATE_COMPONENT"
	BundleTooFewComponents   = "BUNDLE_TOO_FEW_COMPONENTS"
	BundleInvalidQuantity    = "BUNDLE_INVALID_QUANTITY"
	BundleStockReadOnly      = "BUNDLE_STOCK_READ_ONLY"
	BundleUnresolvedItem     = "BUNDLE_UNRESOLVED_COMPONENT"
	BundleNestedComponent    = "BUNDLE_NESTED_COMPONENT"

	// ==================== Bank accounts (BANK_) ====================
	BankAccountNotFound = "BANK_ACCOUNT_NOT_FOUND"

	// ==================== Rewards (REWARD_) ====================
	RewardNotFound = "REWARD_NOT_FOUND"

	// ==================== Vouchers (VOUCHER_) ====================
	VoucherNotFound     = "VOUCHER_NOT_FOUND"
	VoucherCodeExists   = "VOUCHER_CODE_EXISTS"
	VoucherNotActive    = "VOUCHER_NOT_ACTIVE"
	VoucherNotStarted   = "VOUCHER_NOT_STARTED"
	VoucherExpired      = "VOUCHER_EXPIRED"
	VoucherUsageLimit   = "VOUCHER_USAGE_LIMIT_REACHED"
	VoucherMinSpend     = "VOUCHER_MIN_SPEND_NOT_MET"
	VoucherInvalidValue = "VOUCHER_INVALID_VALUE"

	// ==================== Orders / reports (ORDER_ / REPORT_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"
	ReportInvalidRange = "REPORT_INVALID_RANGE"

	// ==================== Alerts (ALERT_) ====================
	AlertNotFound = "ALERT_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalDatabase    = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API_ERROR"
)
