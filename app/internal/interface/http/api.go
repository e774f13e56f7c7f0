package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	dommsg "example.com/property-listing/app/internal/domain/message"
	domprofile "example.com/property-listing/app/internal/domain/profile"
	domproperty "example.com/property-listing/app/internal/domain/property"
	domuser "example.com/property-listing/app/internal/domain/user"
	authuc "example.com/property-listing/app/internal/usecase/auth"
	messageuc "example.com/property-listing/app/internal/usecase/message"
	profileuc "example.com/property-listing/app/internal/usecase/profile"
	propertyuc "example.com/property-listing/app/internal/usecase/property"
	useruc "example.com/property-listing/app/internal/usecase/user"
)

const (
	defaultListingLimit = 6
	defaultMaxLimit     = 50
)

var (
	errValidationFailed = errors.New("validation failed")
	errInternal         = errors.New("internal server error")
)

type API struct {
	authSvc     *authuc.Service
	userSvc     *useruc.Service
	propertySvc *propertyuc.Service
	profileSvc  *profileuc.Service
	messageSvc  *messageuc.Service
	validator   *validator.Validate
	log         *zap.Logger
	metrics     *Metrics
	corsOrigins []string
	limits      ListingLimits
}

// ListingLimits bounds the ?limit= query of the featured and latest endpoints.
type ListingLimits struct {
	Default int
	Max     int
}

type Dependencies struct {
	AuthService     *authuc.Service
	UserService     *useruc.Service
	PropertyService *propertyuc.Service
	ProfileService  *profileuc.Service
	MessageService  *messageuc.Service
	Logger          *zap.Logger
	Metrics         *Metrics
	CORSOrigins     []string
	Limits          ListingLimits
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limits := deps.Limits
	if limits.Default < 1 {
		limits.Default = defaultListingLimit
	}
	if limits.Max < limits.Default {
		limits.Max = defaultMaxLimit
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &API{
		authSvc:     deps.AuthService,
		userSvc:     deps.UserService,
		propertySvc: deps.PropertyService,
		profileSvc:  deps.ProfileService,
		messageSvc:  deps.MessageService,
		validator:   validate,
		log:         log,
		metrics:     deps.Metrics,
		corsOrigins: origins,
		limits:      limits,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chimw.AllowContentType("application/json"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", a.handleRegister)
		r.Post("/login", a.handleLogin)

		r.Route("/properties", func(pr chi.Router) {
			pr.Get("/", a.handleFilterProperties)
			pr.Get("/featured", a.handleFeaturedProperties)
			pr.Get("/latest", a.handleLatestProperties)
			pr.Get("/type/{type}", a.handlePropertiesByType)

			pr.Group(func(ar chi.Router) {
				ar.Use(a.authMiddleware)
				ar.Post("/create-or-update", a.handleCreateOrUpdateProperty)
				ar.Post("/create-or-update/{id}", a.handleCreateOrUpdateProperty)
				ar.Get("/edit/{property}", a.handleEditProperty)
			})

			pr.Get("/{slug}", a.handleShowProperty)
		})

		r.Group(func(ar chi.Router) {
			ar.Use(a.authMiddleware)

			ar.Get("/user", a.handleCurrentUser)
			ar.Post("/logout", a.handleLogout)
			ar.Post("/change-password", a.handleChangePassword)
			ar.Delete("/delete-account", a.handleDeleteAccount)

			ar.Get("/dashboard/properties", a.handleUserProperties)

			ar.Route("/profile", func(pr chi.Router) {
				pr.Get("/get-information", a.handleGetProfileInformation)
				pr.Post("/update-information", a.handleUpdateProfileInformation)
				pr.Get("/get-social-media", a.handleGetSocialMedia)
				pr.Post("/update-social-media", a.handleUpdateSocialMedia)
			})

			ar.Route("/messages", func(mr chi.Router) {
				mr.Get("/", a.handleInbox)
				mr.Post("/create", a.handleCreateMessage)
				mr.Post("/{message}/replies", a.handleReplyMessage)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

// respondDecodeError answers 422 with per-field rules for validation failures
// and 400 for anything the JSON decoder rejected.
func respondDecodeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errValidationFailed.Error(), Details: details})
		return
	}
	respondError(w, http.StatusBadRequest, err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func (a *API) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domproperty.ErrPropertyNotFound),
		errors.Is(err, domuser.ErrUserNotFound),
		errors.Is(err, dommsg.ErrMessageNotFound),
		errors.Is(err, domprofile.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproperty.ErrForbidden),
		errors.Is(err, dommsg.ErrNotParticipant):
		respondError(w, http.StatusForbidden, err)
	case errors.Is(err, domproperty.ErrInvalidLimit),
		errors.Is(err, domproperty.ErrInvalidStatus),
		errors.Is(err, domproperty.ErrUnsupportedFilter),
		errors.Is(err, dommsg.ErrCannotMessageSelf),
		errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, domuser.ErrWrongPassword),
		errors.Is(err, domuser.ErrPasswordUnchanged):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed),
		errors.Is(err, domproperty.ErrSlugExhausted),
		errors.Is(err, domproperty.ErrSlugTaken):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		a.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, errInternal)
	}
}
