package handler

import "github.com/labstack/echo/v4"

// Every JSON response except the client list carries a success flag.  Errors
// add a message; successes add a message and/or a payload field.

func errorBody(msg string) echo.Map {
	return echo.Map{"success": false, "message": msg}
}

func okBody(msg string) echo.Map {
	return echo.Map{"success": true, "message": msg}
}

// Messages surfaced to callers.
const (
	msgInternal      = "internal server error"
	msgRouteNotFound = "Route not found"
	msgInvalidBody   = "invalid request body"

	msgCreateMissing  = "All fields (numCompte, nom, solde) are required."
	msgCreated        = "Client added successfully"
	msgDuplicate      = "Account number already exists."
	msgCreateFailed   = "Internal server error while adding the client."
	msgListFailed     = "Internal server error while retrieving clients."
	msgUpdateMissing  = "Fields nom and solde are required for update."
	msgUpdated        = "Client updated successfully"
	msgUpdateNotFound = "Client not found"
	msgUpdateFailed   = "Internal server error while updating the client."
	msgDeleted        = "Client deleted successfully"
	msgDeleteNotFound = "Client not found for deletion"
	msgDeleteFailed   = "Internal server error while deleting the client."
	msgSummaryFailed  = "Internal server error while retrieving balance statistics."
)
