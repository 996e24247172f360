package domain

// Action is the name of a request action
type Action string

const (
	ActionGetKontragentList     Action = "get_kontragent_list"
	ActionGetKontragentData     Action = "get_kontragent_data"
	ActionSaveKontragent        Action = "save_kontragent"
	ActionGetContracts          Action = "get_contracts"
	ActionSaveContract          Action = "save_contract"
	ActionDeleteContract        Action = "delete_contract"
	ActionGetRegions            Action = "get_regions"
	ActionGetCitiesByRegion     Action = "get_cities_by_region"
	ActionMarkKontragentDeleted Action = "mark_kontragent_deleted"
	ActionRestoreKontragent     Action = "restore_kontragent"
	ActionLogClientNotify       Action = "log_client_notify"
)

// ActionTag is the action_type of an activity log entry.
// Each handler branch writes its own tag.
type ActionTag string

const (
	TagGetKontragentList       ActionTag = "GET_KONTRAGENT_LIST"
	TagGetKontragentListFailed ActionTag = "GET_KONTRAGENT_LIST_FAILED"

	TagFormLoadExisting       ActionTag = "FORM_LOAD_EXISTING"
	TagFormLoadFailedNotFound ActionTag = "FORM_LOAD_FAILED_NOT_FOUND"
	TagFormLoadFailedDBError  ActionTag = "FORM_LOAD_FAILED_DB_ERROR"

	TagSaveSuccessInsert           ActionTag = "SAVE_SUCCESS_INSERT"
	TagSaveFailedInsertMainExecute ActionTag = "SAVE_FAILED_INSERT_MAIN_EXECUTE"
	TagSaveSuccessUpdate           ActionTag = "SAVE_SUCCESS_UPDATE"
	TagSaveFailedUpdateMainExecute ActionTag = "SAVE_FAILED_UPDATE_MAIN_EXECUTE"
	TagSaveFailedTransaction       ActionTag = "SAVE_FAILED_TRANSACTION"

	TagOperatorInsertSuccess       ActionTag = "OPERATOR_INSERT_SUCCESS"
	TagOperatorInsertFailedExecute ActionTag = "OPERATOR_INSERT_FAILED_EXECUTE"
	TagOperatorUpdateSuccess       ActionTag = "OPERATOR_UPDATE_SUCCESS"
	TagOperatorUpdateFailedExecute ActionTag = "OPERATOR_UPDATE_FAILED_EXECUTE"
	TagOperatorDeleteSuccess       ActionTag = "OPERATOR_DELETE_SUCCESS"
	TagOperatorDeleteFailedExecute ActionTag = "OPERATOR_DELETE_FAILED_EXECUTE"

	TagGetContracts       ActionTag = "GET_CONTRACTS"
	TagGetContractsFailed ActionTag = "GET_CONTRACTS_FAILED"

	TagContractInsertSuccess       ActionTag = "CONTRACT_INSERT_SUCCESS"
	TagContractUpdateSuccess       ActionTag = "CONTRACT_UPDATE_SUCCESS"
	TagContractSaveFailedExecute   ActionTag = "CONTRACT_SAVE_FAILED_EXECUTE"
	TagContractSaveFailedDBError   ActionTag = "CONTRACT_SAVE_FAILED_DB_ERROR"
	TagContractDeleteSuccess       ActionTag = "CONTRACT_DELETE_SUCCESS"
	TagContractDeleteFailedExecute ActionTag = "CONTRACT_DELETE_FAILED_EXECUTE"
	TagContractDeleteDBError       ActionTag = "CONTRACT_DELETE_DB_ERROR"

	TagSoftDeleteSuccess ActionTag = "SOFT_DELETE_SUCCESS"
	TagSoftDeleteFailed  ActionTag = "SOFT_DELETE_FAILED"
	TagSoftDeleteDBError ActionTag = "SOFT_DELETE_DB_ERROR"
	TagRestoreSuccess    ActionTag = "RESTORE_SUCCESS"
	TagRestoreFailed     ActionTag = "RESTORE_FAILED"
	TagRestoreDBError    ActionTag = "RESTORE_DB_ERROR"

	TagClientNotify ActionTag = "CLIENT_NOTIFY"
)
