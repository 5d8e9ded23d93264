package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"ootdapi/dbhelper"
	"ootdapi/models"
	"ootdapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSignInNewUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	param := models.GoogleAuthSignIn{IdToken: "fake-token", Platform: "ios"}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response models.SignInOut
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Equal(t, "fake@example.com", response.Email)
	require.True(t, response.New)
	require.False(t, response.OnboardingCompleted)
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)

	var user models.UserAccount
	r := db.Where("email = ?", "fake@example.com").Limit(1).Find(&user)
	require.Equal(t, int64(1), r.RowsAffected)
	require.Equal(t, "123googleid", user.GoogleID)
	require.Equal(t, models.PlatformIOS, user.Platform)
}

func TestGoogleSignInExistingUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	existing := models.UserAccount{
		Name:     "Existing",
		Email:    "fake@example.com",
		GoogleID: "123googleid",
		Platform: models.PlatformAndroid,
		Status:   "FINISHED_AUTH",
	}
	db.Create(&existing)

	param := models.GoogleAuthSignIn{IdToken: "fake-token", Platform: "android"}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.SignInOut
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.False(t, response.New)
	require.Equal(t, existing.ID, response.Id)

	var count int64
	db.Model(&models.UserAccount{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestGoogleSignInBannedUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	banned := models.UserAccount{
		Email:    "fake@example.com",
		GoogleID: "123googleid",
		Banned:   true,
		Status:   "FINISHED_AUTH",
	}
	db.Create(&banned)

	param := models.GoogleAuthSignIn{IdToken: "fake-token", Platform: "ios"}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGoogleSignInBadPlatform(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	param := models.GoogleAuthSignIn{IdToken: "fake-token", Platform: "symbian"}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	param := models.GoogleAuthSignIn{IdToken: "fake-token", Platform: "ios"}
	req := test.NewJSONRequest("POST", "/auth/google", param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var signIn models.SignInOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signIn))

	refreshParam := models.RefreshTokenIn{RefreshToken: signIn.RefreshToken}
	req = test.NewJSONRequest("POST", "/auth/refresh-token", refreshParam)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response["access_token"])
	require.NotEmpty(t, response["refresh_token"])
}

func TestRefreshTokenGarbage(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)

	refreshParam := models.RefreshTokenIn{RefreshToken: "not-a-jwt"}
	req := test.NewJSONRequest("POST", "/auth/refresh-token", refreshParam)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/auth/me", strconv.FormatUint(uint64(user.ID), 10), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.UserAccount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
	require.Equal(t, user.ID, response.ID)
}

func TestUpdateSettings(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	param := models.UserSettingsIn{ReceiveNotifications: true}
	req := test.NewJSONAuthRequest("POST", "/auth/settings", strconv.FormatUint(uint64(user.ID), 10), param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.UserAccount
	db.First(&saved, user.ID)
	require.True(t, saved.ReceiveNotifications)
}

func TestRegisterAndDeletePushToken(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)
	userPk := strconv.FormatUint(uint64(user.ID), 10)

	param := models.UserPushIn{Token: "device-token-1", Platform: "android"}
	req := test.NewJSONAuthRequest("POST", "/auth/register-push", userPk, param)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-registering the same token is a no-op.
	req = test.NewJSONAuthRequest("POST", "/auth/register-push", userPk, param)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.UserPushToken{}).Where("user_account_id = ? and token = ?", user.ID, "device-token-1").Count(&count)
	require.Equal(t, int64(1), count)

	req = test.NewJSONAuthRequest("POST", "/auth/delete-push", userPk, param)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	db.Model(&models.UserPushToken{}).Where("user_account_id = ? and token = ?", user.ID, "device-token-1").Count(&count)
	require.Equal(t, int64(0), count)
}

func TestDeleteAccount(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, nil, nil)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/auth/delete-account", strconv.FormatUint(uint64(user.ID), 10), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.UserAccount
	db.First(&saved, user.ID)
	require.NotNil(t, saved.ConfirmedDeleteDate)
}
