package usecase

import (
	"context"
	"errors"
	"strings"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/delivery/http/middleware"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/database"
	"medconnect/internal/service"
	"medconnect/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrLicenseAlreadyExists = errors.New("license number already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenRevoked         = errors.New("token has been revoked")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrEmailNotVerified     = errors.New("identity provider email is not verified")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterProfessional(ctx context.Context, req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ProviderLogin(ctx context.Context, req *dto.ProviderLoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetMe(ctx context.Context) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type authUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	userRepo                repository.UserRepository
	professionalProfileRepo repository.ProfessionalProfileRepository
	patientProfileRepo      repository.PatientProfileRepository
	specialtyRepo           repository.SpecialtyRepository
	hospitalRepo            repository.HospitalRepository
	jwtService              *jwt.JWTService
	tokenStore              service.TokenStore
	identityVerifier        service.IdentityVerifier
	auditService            service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	professionalProfileRepo repository.ProfessionalProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	specialtyRepo repository.SpecialtyRepository,
	hospitalRepo repository.HospitalRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	identityVerifier service.IdentityVerifier,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                      db,
		log:                     log,
		userRepo:                userRepo,
		professionalProfileRepo: professionalProfileRepo,
		patientProfileRepo:      patientProfileRepo,
		specialtyRepo:           specialtyRepo,
		hospitalRepo:            hospitalRepo,
		jwtService:              jwtService,
		tokenStore:              tokenStore,
		identityVerifier:        identityVerifier,
		auditService:            auditService,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    normalizeEmail(req.Email),
		Password: string(hashedPassword),
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleID:   entity.RoleIDPatient,
		IsActive: true,
	}
	if err := u.createUser(ctx, tx, user); err != nil {
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:      user.ID,
		DateOfBirth: dob,
		Gender:      req.Gender,
	}
	if err := u.patientProfileRepo.Create(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RolePatient,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.PatientProfile = profile
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RegisterProfessional(ctx context.Context, req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	specialtyID, err := parseOptionalUUID(req.SpecialtyID)
	if err != nil {
		return nil, err
	}
	hospitalID, err := parseOptionalUUID(req.HospitalID)
	if err != nil {
		return nil, err
	}
	if req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := u.ensureReferences(ctx, specialtyID, hospitalID); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    normalizeEmail(req.Email),
		Password: string(hashedPassword),
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleID:   entity.RoleIDProfessional,
		IsActive: true,
	}
	if err := u.createUser(ctx, tx, user); err != nil {
		return nil, err
	}

	profile := &entity.ProfessionalProfile{
		UserID:          user.ID,
		LicenseNumber:   strings.TrimSpace(req.LicenseNumber),
		SpecialtyID:     specialtyID,
		HospitalID:      hospitalID,
		Biography:       req.Biography,
		ConsultationFee: req.ConsultationFee,
		YearsExperience: req.YearsExperience,
	}
	if err := u.professionalProfileRepo.Create(ctx, tx, profile); err != nil {
		// the user row went in first, so a unique violation here is the license
		if database.IsUniqueViolation(err) {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to create professional profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionProfessionalCreate, "user", user.ID.String(), map[string]interface{}{
		"email":          user.Email,
		"license_number": profile.LicenseNumber,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Professional registered: id=%s, by=%s", user.ID, adminID)
	user.ProfessionalProfile = profile
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) createUser(ctx context.Context, tx *gorm.DB, user *entity.User) error {
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) ensureReferences(ctx context.Context, specialtyID, hospitalID *uuid.UUID) error {
	if specialtyID != nil {
		specialty, err := u.specialtyRepo.FindByID(ctx, u.db, *specialtyID)
		if err != nil {
			u.log.Warnf("Failed to find specialty %s: %+v", *specialtyID, err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}
	}
	if hospitalID != nil {
		hospital, err := u.hospitalRepo.FindByID(ctx, u.db, *hospitalID)
		if err != nil {
			u.log.Warnf("Failed to find hospital %s: %+v", *hospitalID, err)
			return err
		}
		if hospital == nil {
			return ErrHospitalNotFound
		}
	}
	return nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user)
}

// ProviderLogin trades an identity-provider ID token for a local token pair.
// The verified email links to an existing account; unknown emails become patients.
func (u *authUsecase) ProviderLogin(ctx context.Context, req *dto.ProviderLoginRequest) (*dto.TokenResponse, error) {
	identity, err := u.identityVerifier.Verify(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrProviderTokenInvalid) {
			return nil, ErrInvalidToken
		}
		u.log.Warnf("Failed to verify provider token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByProviderUID(ctx, u.db, identity.UID)
	if err != nil {
		u.log.Warnf("Failed to find user by provider uid: %+v", err)
		return nil, err
	}

	if user == nil {
		if identity.Email == "" || !identity.EmailVerified {
			return nil, ErrEmailNotVerified
		}
		user, err = u.linkOrCreateProviderUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) linkOrCreateProviderUser(ctx context.Context, identity *service.ProviderIdentity) (*entity.User, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := normalizeEmail(identity.Email)
	user, err := u.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	uid := identity.UID
	if user != nil {
		user.ProviderUID = &uid
		if user.AvatarURL == "" {
			user.AvatarURL = identity.Picture
		}
		if err := u.userRepo.Update(ctx, tx, user); err != nil {
			u.log.Warnf("Failed to link provider uid: %+v", err)
			return nil, err
		}
	} else {
		fullName := identity.Name
		if fullName == "" {
			fullName = strings.Split(email, "@")[0]
		}
		user = &entity.User{
			Email:       email,
			FullName:    fullName,
			AvatarURL:   identity.Picture,
			ProviderUID: &uid,
			RoleID:      entity.RoleIDPatient,
			IsActive:    true,
		}
		if err := u.createUser(ctx, tx, user); err != nil {
			return nil, err
		}
		if err := u.patientProfileRepo.Create(ctx, tx, &entity.PatientProfile{UserID: user.ID}); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
			"email":    user.Email,
			"role":     entity.RolePatient,
			"provider": true,
		}); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, user.ID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Role and email come from the account, not the old claims, so changes apply on refresh
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	rotated, err := u.tokenStore.Rotate(ctx, user.ID, claims.TokenID, accessTokenID, refreshTokenID)
	if err != nil {
		return nil, err
	}
	if !rotated {
		return nil, ErrTokenRevoked
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	accessTokenID, _ := middleware.GetTokenIDFromContext(ctx)

	var refreshTokenID string
	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			refreshTokenID = claims.TokenID
		}
	}

	return u.tokenStore.Revoke(ctx, userID, accessTokenID, refreshTokenID)
}

func (u *authUsecase) GetMe(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := u.loadUserWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) loadUserWithProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.RoleID {
	case entity.RoleIDProfessional:
		profile, err := u.professionalProfileRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			u.log.Warnf("Failed to find professional profile: %+v", err)
			return nil, err
		}
		user.ProfessionalProfile = profile
	case entity.RoleIDPatient:
		profile, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile: %+v", err)
			return nil, err
		}
		user.PatientProfile = profile
	}
	return user, nil
}

func (u *authUsecase) UpdateMe(ctx context.Context, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	old := map[string]interface{}{"full_name": user.FullName, "phone": user.Phone, "avatar_url": user.AvatarURL}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionUserUpdate, "user", userID.String(), old,
		map[string]interface{}{"full_name": user.FullName, "phone": user.Phone, "avatar_url": user.AvatarURL}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = string(hashedPassword)

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPasswordChange, "user", userID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Every session issued with the old password ends here
	if err := u.tokenStore.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens after password change: %+v", err)
		return err
	}

	u.log.Infof("Password changed: user=%s", userID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
