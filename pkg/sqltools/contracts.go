// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sqltools

// Methods of the service's azureFunctions surface. The contract is owned by
// the service; this package only mirrors it.
const (
	getAzureFunctionsRequest = "azureFunctions/getAzureFunctions"
	addSqlBindingRequest     = "azureFunctions/addSqlBinding"

	// cancelRequestMethod is the StreamJsonRpc cancellation notification. Its
	// only parameter is the id of the request to cancel.
	cancelRequestMethod = "$/cancelRequest"
)

// ResultStatus is the response envelope shared by every azureFunctions
// exchange: a success flag plus an error message populated on failure.
type ResultStatus struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

type GetAzureFunctionsParams struct {
	FilePath string `json:"filePath"`
}

type GetAzureFunctionsResult struct {
	ResultStatus

	// AzureFunctions holds the names of the functions declared in the file.
	AzureFunctions []string `json:"azureFunctions"`
}

// AddSqlBindingParams carries one binding insertion. Every field is required;
// see [AddSqlBindingParams.validate].
type AddSqlBindingParams struct {
	BindingType             string `json:"bindingType"`
	FilePath                string `json:"filePath"`
	FunctionName            string `json:"functionName"`
	ObjectName              string `json:"objectName"`
	ConnectionStringSetting string `json:"connectionStringSetting"`
}
