package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/utils"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse response body: %v", err)
	}
	return response
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       interface{}
		wantBody   map[string]interface{}
	}{
		{
			name:       "Success response",
			statusCode: http.StatusOK,
			data:       map[string]string{"name": "Central"},
			wantBody: map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"name": "Central"},
			},
		},
		{
			name:       "Created response",
			statusCode: http.StatusCreated,
			data:       []int{1, 2},
			wantBody: map[string]interface{}{
				"success": true,
				"data":    []interface{}{float64(1), float64(2)},
			},
		},
		{
			name:       "Nil data",
			statusCode: http.StatusOK,
			data:       nil,
			wantBody: map[string]interface{}{
				"success": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			utils.JSON(rr, tt.statusCode, tt.data)

			if status := rr.Code; status != tt.statusCode {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.statusCode)
			}

			if ctype := rr.Header().Get("Content-Type"); ctype != constants.ContentTypeJSON {
				t.Errorf("handler returned wrong content type: got %v want %v", ctype, constants.ContentTypeJSON)
			}

			if response := decodeBody(t, rr); !reflect.DeepEqual(response, tt.wantBody) {
				t.Errorf("handler returned unexpected body: got %v want %v", response, tt.wantBody)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.Message(rr, http.StatusOK, constants.MsgParkingDeleted)

	want := map[string]interface{}{
		"success": true,
		"message": constants.MsgParkingDeleted,
	}
	if response := decodeBody(t, rr); !reflect.DeepEqual(response, want) {
		t.Errorf("Message() body = %v, want %v", response, want)
	}
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.Error(rr, http.StatusBadRequest, constants.CodeValidationError, "Invalid input", map[string]string{"email": "Must be a valid email address"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Error() status = %v, want %v", rr.Code, http.StatusBadRequest)
	}

	want := map[string]interface{}{
		"success":   false,
		"error":     "Invalid input",
		"errorCode": constants.CodeValidationError,
		"details":   map[string]interface{}{"email": "Must be a valid email address"},
	}
	if response := decodeBody(t, rr); !reflect.DeepEqual(response, want) {
		t.Errorf("Error() body = %v, want %v", response, want)
	}
}

func TestErrorFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *utils.AppError
		wantStatus int
		wantBody   map[string]interface{}
	}{
		{
			name:       "Not found",
			err:        utils.NewNotFoundError("Review"),
			wantStatus: http.StatusNotFound,
			wantBody: map[string]interface{}{
				"success":   false,
				"error":     constants.MsgReviewNotFound,
				"errorCode": constants.CodeNotFound,
			},
		},
		{
			name:       "Duplicate email",
			err:        utils.NewDuplicateError(constants.ColumnEmail, constants.MsgEmailAlreadyRegistered),
			wantStatus: http.StatusConflict,
			wantBody: map[string]interface{}{
				"success":   false,
				"error":     constants.MsgEmailAlreadyRegistered,
				"errorCode": constants.CodeDuplicateResource,
			},
		},
		{
			name:       "Validation field",
			err:        utils.NewValidationError("username", "This field is required"),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]interface{}{
				"success":   false,
				"error":     "This field is required",
				"errorCode": constants.CodeValidationError,
				"details":   map[string]interface{}{"username": "This field is required"},
			},
		},
		{
			name:       "Input mismatch",
			err:        utils.NewInputMismatchError(constants.MsgPasswordsDoNotMatch),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]interface{}{
				"success":   false,
				"error":     constants.MsgPasswordsDoNotMatch,
				"errorCode": constants.CodeInputMismatch,
			},
		},
		{
			name:       "Internal error hides cause",
			err:        utils.NewInternalServerError(errors.New("pq: password authentication failed")),
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]interface{}{
				"success":   false,
				"error":     constants.MsgInternalServerError,
				"errorCode": constants.CodeInternalError,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			utils.ErrorFromAppError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("ErrorFromAppError() status = %v, want %v", rr.Code, tt.wantStatus)
			}

			if response := decodeBody(t, rr); !reflect.DeepEqual(response, tt.wantBody) {
				t.Errorf("ErrorFromAppError() body = %v, want %v", response, tt.wantBody)
			}
		})
	}
}

func TestSendJSONMarshalFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.SendJSON(rr, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("SendJSON() status = %v, want %v", rr.Code, http.StatusInternalServerError)
	}

	response := decodeBody(t, rr)
	if response["success"] != false {
		t.Errorf("SendJSON() success = %v, want false", response["success"])
	}
}

func TestNotFoundDefaultMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.NotFound(rr, "")

	response := decodeBody(t, rr)
	if response["error"] != constants.MsgResourceNotFound {
		t.Errorf("NotFound() error = %v, want %v", response["error"], constants.MsgResourceNotFound)
	}
}

func TestInternalServerError(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.InternalServerError(rr, errors.New("disk full"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("InternalServerError() status = %v, want %v", rr.Code, http.StatusInternalServerError)
	}

	response := decodeBody(t, rr)
	if response["error"] != constants.MsgInternalServerError {
		t.Errorf("InternalServerError() error = %v, want %v", response["error"], constants.MsgInternalServerError)
	}
}
