package domain

// User-facing messages
const (
	MsgUnknownAction            = "Unknown action: "
	MsgNameOrFioRequired        = "Kontragent name or full name (fio) is required."
	MsgKontragentIDRequired     = "Kontragent ID is not specified."
	MsgKontragentNotFound       = "Kontragent not found or has been deleted."
	MsgKontragentLoadFailed     = "Database error while loading kontragent data: "
	MsgKontragentListFailed     = "Error loading kontragent list: "
	MsgKontragentInserted       = "New kontragent added successfully."
	MsgKontragentUpdated        = "Kontragent data updated successfully."
	MsgKontragentInsertFailed   = "Error adding kontragent: "
	MsgKontragentUpdateFailed   = "Error updating kontragent data: "
	MsgOperatorSaveFailed       = " Error saving operator data: "
	MsgOperatorDeleteFailed     = " Error deleting operator data: "
	MsgSaveTransactionFailed    = "Database error while saving: "
	MsgContractOwnerRequired    = "Kontragent ID or company ID is not specified."
	MsgContractListFailed       = "Error loading contracts: "
	MsgContractInserted         = "Contract added successfully (Number: %s)."
	MsgContractUpdated          = "Contract updated successfully."
	MsgContractSaveFailed       = "Error saving contract: "
	MsgContractDeleteIDRequired = "Contract ID or kontragent ID is not specified."
	MsgContractDeleted          = "Contract deleted successfully."
	MsgContractDeleteFailed     = "Error deleting contract: "
	MsgRegionsFailed            = "Error loading regions: "
	MsgCitiesFailed             = "Error loading cities: "
	MsgSoftDeleted              = "Kontragent marked as deleted."
	MsgSoftDeleteFailed         = "Error deleting kontragent: "
	MsgRestored                 = "Kontragent restored."
	MsgRestoreFailed            = "Error restoring kontragent: "
	MsgClientNotifyLogged       = "Client notification logged."
	MsgInternalError            = "Internal error while processing the request."
)
