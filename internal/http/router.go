package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"

	"fitsync-pro/backend/internal/config"
	"fitsync-pro/backend/internal/domain/booking"
	"fitsync-pro/backend/internal/domain/notify"
	"fitsync-pro/backend/internal/domain/order"
	"fitsync-pro/backend/internal/domain/product"
	"fitsync-pro/backend/internal/domain/profile"
	"fitsync-pro/backend/internal/domain/review"
	"fitsync-pro/backend/internal/domain/session"
	"fitsync-pro/backend/internal/domain/stats"
	"fitsync-pro/backend/internal/domain/trainer"
	"fitsync-pro/backend/internal/domain/virtualsession"
	"fitsync-pro/backend/internal/handlers"
	"fitsync-pro/backend/internal/middleware"
)

type RouterDeps struct {
	Cfg        config.Config
	AuthClient *auth.Client

	SessionSvc *session.Service
	BookingSvc *booking.Service
	VirtualSvc *virtualsession.Service
	ReviewSvc  *review.Service
	TrainerSvc *trainer.Service
	ProductSvc *product.Service
	OrderSvc   *order.Service
	NotifySvc  *notify.Service
	StatsSvc   *stats.Service
	ProfileSvc *profile.Service
	Uploads    *handlers.Uploads
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Stripe Webhook (no auth required) =====
	if d.OrderSvc != nil && d.Cfg.StripeWebhookSecret != "" {
		r.Post("/v1/stripe/webhook", d.OrderSvc.HandleWebhook)
	}

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			WriteJSON(w, 200, map[string]any{
				"uid":    au.UID,
				"email":  au.Email,
				"claims": au.Claims,
			})
		})

		// ===== Sessions =====
		pr.Post("/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
			au, ok := requireTrainer(w, r)
			if !ok {
				return
			}

			var in session.CreateSessionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.Trim()

			out, err := d.SessionSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			in := session.ListSessionsInput{
				TrainerID:       strings.TrimSpace(q.Get("trainerId")),
				JoinedUserID:    strings.TrimSpace(q.Get("joinedUserId")),
				Public:          q.Get("public") == "true",
				IncludeCanceled: q.Get("includeCanceled") == "true",
			}
			if v := q.Get("limit"); v != "" {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					in.Limit = n
				}
			}

			sessions, err := d.SessionSvc.List(r.Context(), in)
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}

			// The unified listing carries virtual sessions alongside.
			if q.Get("includeVirtual") == "true" {
				virtual, err := d.VirtualSvc.List(r.Context(), q.Get("trainer"))
				if err != nil {
					status, msg := mapVirtualSessionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{
					"sessions":        sessions,
					"virtualSessions": virtual,
				})
				return
			}

			WriteJSON(w, 200, map[string]any{"sessions": sessions})
		})

		pr.Get("/v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.SessionSvc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			var in session.UpdateSessionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.Trim()

			out, err := d.SessionSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			if err := d.SessionSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"deleted": true})
		})

		pr.Patch("/v1/sessions/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
			au, ok := requireTrainer(w, r)
			if !ok {
				return
			}

			var in session.CancelSessionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.Trim()
			in.CancelledBy = au.UID

			out, err := d.SessionSvc.Cancel(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Patch("/v1/sessions/{id}/reschedule", func(w http.ResponseWriter, r *http.Request) {
			au, ok := requireTrainer(w, r)
			if !ok {
				return
			}

			var in session.RescheduleSessionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			in.Trim()
			in.RescheduledBy = au.UID

			out, err := d.SessionSvc.Reschedule(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Participation =====
		pr.Post("/v1/sessions/{id}/join", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			in := booking.JoinInput{
				UserID:    au.UID,
				UserName:  au.Name,
				UserEmail: au.Email,
			}
			if in.UserName == "" {
				in.UserName = au.Email
			}

			out, err := d.BookingSvc.Join(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/sessions/{id}/participants", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			out, err := d.BookingSvc.ListParticipants(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/sessions/{id}/approve-booking", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			var in booking.DecisionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.BookingSvc.Approve(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/sessions/{id}/reject-booking", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			var in booking.DecisionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.BookingSvc.Reject(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Virtual sessions =====
		pr.Post("/v1/virtual-sessions", func(w http.ResponseWriter, r *http.Request) {
			au, ok := requireTrainer(w, r)
			if !ok {
				return
			}

			var in virtualsession.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.VirtualSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapVirtualSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/virtual-sessions", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.VirtualSvc.List(r.Context(), r.URL.Query().Get("trainer"))
			if err != nil {
				status, msg := mapVirtualSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"virtualSessions": out})
		})

		pr.Get("/v1/virtual-sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.VirtualSvc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapVirtualSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/virtual-sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			var in virtualsession.UpdateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.VirtualSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapVirtualSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/virtual-sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireTrainer(w, r); !ok {
				return
			}

			if err := d.VirtualSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				status, msg := mapVirtualSessionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"deleted": true})
		})

		// ===== Reviews =====
		pr.Post("/v1/reviews", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in review.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ReviewSvc.Create(r.Context(), au.Email, in)
			if err != nil {
				status, msg := mapReviewError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/reviews", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.ReviewSvc.ListByTrainer(r.Context(), r.URL.Query().Get("trainer"))
			if err != nil {
				status, msg := mapReviewError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"reviews": out})
		})

		pr.Delete("/v1/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := d.ReviewSvc.Delete(r.Context(), chi.URLParam(r, "id"), au.Email, au.Name); err != nil {
				status, msg := mapReviewError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"deleted": true})
		})

		// ===== Trainer discovery =====
		pr.Get("/v1/trainers", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.TrainerSvc.List(r.Context())
			if err != nil {
				status, msg := mapTrainerError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"trainers": out})
		})

		pr.Get("/v1/trainers/{name}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.TrainerSvc.Get(r.Context(), chi.URLParam(r, "name"))
			if err != nil {
				status, msg := mapTrainerError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Products =====
		pr.Get("/v1/products", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			in := product.ListInput{
				Category: strings.TrimSpace(r.URL.Query().Get("category")),
			}
			if r.URL.Query().Get("includeHidden") == "true" && middleware.IsAdmin(au.Claims) {
				in.IncludeHidden = true
			}

			out, err := d.ProductSvc.List(r.Context(), in)
			if err != nil {
				status, msg := mapProductError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"products": out})
		})

		pr.Get("/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.ProductSvc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapProductError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/products", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			var in product.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ProductSvc.Create(r.Context(), in)
			if err != nil {
				status, msg := mapProductError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Put("/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			var in product.UpdateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ProductSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapProductError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			if err := d.ProductSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				status, msg := mapProductError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"deleted": true})
		})

		if d.Uploads != nil {
			pr.Post("/v1/uploads/signed-url", func(w http.ResponseWriter, r *http.Request) {
				if _, ok := requireAdmin(w, r); !ok {
					return
				}
				d.Uploads.CreateSignedUploadURL(w, r)
			})
		}

		// ===== Orders =====
		pr.Post("/v1/orders", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in order.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.OrderSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapOrderError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/orders", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			userID := strings.TrimSpace(r.URL.Query().Get("userId"))
			if userID == "" {
				userID = au.UID
			}
			if userID != au.UID && !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin role required to read other users' orders")
				return
			}

			out, err := d.OrderSvc.ListByUser(r.Context(), userID)
			if err != nil {
				status, msg := mapOrderError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"orders": out})
		})

		pr.Get("/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.OrderSvc.Get(r.Context(), chi.URLParam(r, "id"), au.UID, middleware.IsAdmin(au.Claims))
			if err != nil {
				status, msg := mapOrderError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Patch("/v1/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			var in order.StatusInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.OrderSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapOrderError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/orders/{id}/checkout", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in order.CheckoutInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			url, err := d.OrderSvc.CreateCheckout(r.Context(), chi.URLParam(r, "id"), au.UID, in)
			if err != nil {
				status, msg := mapOrderError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"url": url})
		})

		// ===== Notifications =====
		pr.Get("/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			limit := 0
			if v := r.URL.Query().Get("limit"); v != "" {
				limit, _ = strconv.Atoi(v)
			}

			out, err := d.NotifySvc.List(r.Context(), au.UID, r.URL.Query().Get("unreadOnly") == "true", limit)
			if err != nil {
				status, msg := mapNotifyError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/notifications/markRead", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in notify.MarkReadInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			n, err := d.NotifySvc.MarkRead(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapNotifyError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"marked": n})
		})

		pr.Delete("/v1/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := d.NotifySvc.Delete(r.Context(), au.UID, chi.URLParam(r, "id")); err != nil {
				status, msg := mapNotifyError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"deleted": true})
		})

		// ===== Admin =====
		pr.Get("/v1/admin/stats", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			out, err := d.StatsSvc.GetDashboardStats(r.Context())
			if err != nil {
				Fail(w, 500, err.Error())
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/deactivateUser", func(w http.ResponseWriter, r *http.Request) {
			au, ok := requireAdmin(w, r)
			if !ok {
				return
			}

			var in struct {
				UserID string `json:"userId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.DeactivateUser(r.Context(), au.UID, strings.TrimSpace(in.UserID)); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/admin/reactivateUser", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := requireAdmin(w, r); !ok {
				return
			}

			var in struct {
				UserID string `json:"userId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.ReactivateUser(r.Context(), strings.TrimSpace(in.UserID)); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Profile =====
		pr.Get("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.ProfileSvc.GetProfile(r.Context(), au.UID)
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in profile.UpdateProfileInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.UpdateProfile(r.Context(), au.UID, in); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})
	})

	return r
}

func requireTrainer(w http.ResponseWriter, r *http.Request) (*middleware.AuthUser, bool) {
	au, ok := middleware.GetAuthUser(r.Context())
	if !ok {
		Fail(w, 401, "unauthorized")
		return nil, false
	}
	if !middleware.IsTrainer(au.Claims) {
		Fail(w, 403, "trainer role required")
		return nil, false
	}
	return au, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (*middleware.AuthUser, bool) {
	au, ok := middleware.GetAuthUser(r.Context())
	if !ok {
		Fail(w, 401, "unauthorized")
		return nil, false
	}
	if !middleware.IsAdmin(au.Claims) {
		Fail(w, 403, "admin role required")
		return nil, false
	}
	return au, true
}

func mapSessionError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case session.IsErrUnauthorized(err):
		return 403, err.Error()
	case session.IsErrNotFound(err):
		return 404, err.Error()
	case session.IsErrConflict(err):
		return 409, err.Error()
	case session.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapBookingError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case booking.IsErrNotFound(err):
		return 404, err.Error()
	case booking.IsErrConflict(err):
		return 409, err.Error()
	case booking.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapVirtualSessionError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case virtualsession.IsErrNotFound(err):
		return 404, err.Error()
	case virtualsession.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapReviewError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case review.IsErrForbidden(err):
		return 403, err.Error()
	case review.IsErrNotFound(err):
		return 404, err.Error()
	case review.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapTrainerError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case trainer.IsErrNotFound(err):
		return 404, err.Error()
	case trainer.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapProductError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case product.IsErrNotFound(err):
		return 404, err.Error()
	case product.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapOrderError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case order.IsErrForbidden(err):
		return 403, err.Error()
	case order.IsErrNotFound(err):
		return 404, err.Error()
	case order.IsErrConflict(err):
		return 409, err.Error()
	case order.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNotifyError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case notify.IsErrNotFound(err):
		return 404, err.Error()
	case notify.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapProfileError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case profile.IsErrNotFound(err):
		return 404, err.Error()
	case profile.IsErrTooManyUpdates(err):
		return 429, err.Error()
	case errors.Is(err, profile.ErrCannotDeactivateSelf):
		return 400, err.Error()
	case profile.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}
