package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/payload"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/usecase"
)

// maxRegistrationBody bounds the multipart registration request, files
// included.
const maxRegistrationBody = 16 << 20

const sessionCookieName = "authToken"

// Register handles the multipart registration request: a "userData" JSON
// field plus the "photoIdentite" and "pieceIdentite" file parts.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegistrationBody)
	if err := r.ParseMultipartForm(maxRegistrationBody); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	var userData payload.RegisterUserData
	if err := json.Unmarshal([]byte(r.FormValue("userData")), &userData); err != nil {
		h.respondError(w, http.StatusBadRequest, "the userData field must be valid JSON")
		return
	}
	if !h.validateStruct(w, &userData) {
		return
	}

	photo, err := readFilePart(r, "photoIdentite")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "the photoIdentite file is required")
		return
	}
	document, err := readFilePart(r, "pieceIdentite")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "the pieceIdentite file is required")
		return
	}

	result, err := h.registrationUsecase.RegisterStudent(r.Context(), registrationParams(userData, photo, document))
	if err != nil {
		h.logger.Error().Err(err).Str("email", userData.Email).Msg("registration failed")

		switch {
		case errors.Is(err, usecase.ErrAccountAlreadyExists):
			h.respondError(w, http.StatusConflict, "an account with this email or phone already exists")
		case errors.Is(err, usecase.ErrFileMissing),
			errors.Is(err, usecase.ErrPhotoNotImage),
			errors.Is(err, usecase.ErrDocumentBadType):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, payload.RegisterResponse{
		Message:   "registration successful",
		UserID:    result.UserID,
		StudentID: result.StudentID,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			h.respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("login failed")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authServiceCfg.Token.SessionTokenExpiresIn.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	h.respondJSON(w, http.StatusOK, payload.LoginResponse{Token: token})
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := sessionClaimsFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "missing session")
		return
	}

	user, err := h.userRepo.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to load user profile")
		h.respondError(w, http.StatusNotFound, "user not found")
		return
	}

	h.respondJSON(w, http.StatusOK, payload.UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Phone:     user.Phone,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		StudentID: user.StudentID.Hex(),
		CreatedAt: user.CreatedAt,
	})
}

func readFilePart(r *http.Request, field string) (usecase.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return usecase.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.FileUpload{}, err
	}

	return usecase.FileUpload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Data:        data,
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

func registrationParams(
	userData payload.RegisterUserData,
	photo, document usecase.FileUpload,
) usecase.RegisterStudentParams {
	student := usecase.StudentParams{
		Sex:          userData.Student.Sex,
		BirthDate:    userData.Student.BirthDate,
		DocumentType: userData.Student.DocumentType,
		CityOfStudy:  userData.Student.CityOfStudy,
		Favorites:    userData.Student.Favorites,
		Searches:     userData.Student.Searches,
	}
	if p := userData.Student.Parent; p != nil {
		student.Parent = &usecase.ParentProfileParams{
			Name:    p.Name,
			Kinship: p.Kinship,
			Phone:   p.Phone,
		}
	}
	if np := userData.Student.NotificationPreferences; np != nil {
		student.NotificationPreferences = &usecase.NotificationPreferencesParams{
			Email:       np.Email,
			Push:        np.Push,
			Newsletter:  np.Newsletter,
			PriceAlerts: np.PriceAlerts,
		}
	}

	return usecase.RegisterStudentParams{
		Email:            userData.Email,
		Password:         userData.Password,
		FirstName:        userData.FirstName,
		LastName:         userData.LastName,
		Phone:            userData.Phone,
		Role:             userData.Role,
		TermsAccepted:    userData.TermsAccepted,
		Student:          student,
		IdentityPhoto:    photo,
		IdentityDocument: document,
	}
}
