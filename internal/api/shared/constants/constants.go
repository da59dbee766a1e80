package constants

const (
	// Tip list sizes
	MAX_TIPS_PER_LIST   = 50
	DASHBOARD_TIP_LIMIT = 10
	WALLET_INFO_LIMIT   = 10

	// Maximum multipart request size accepted before the upload size check
	MAX_MULTIPART_MEMORY = 8 << 20

	AVATAR_FORM_FIELD = "avatar"
)
