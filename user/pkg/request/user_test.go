package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest(t *testing.T) {
	expectedMap := map[string]string{"username": "admin", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Username: "admin", Password: "adminpass"}

	actual, _ := json.Marshal(loginReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "adminpass", loginReq.Password)
}

func TestChangePasswordRequest(t *testing.T) {
	expectedMap := map[string]string{"old_password": "***", "new_password": "***"}
	expected, _ := json.Marshal(expectedMap)
	changeReq := ChangePassword{OldPassword: "adminpass", NewPassword: "longenough"}

	actual, _ := json.Marshal(changeReq)

	assert.JSONEq(t, string(expected), string(actual))
	assert.EqualValues(t, "longenough", changeReq.NewPassword)
}
