package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AdamBeresnev/afcon-predictor/internal/config"
	"github.com/AdamBeresnev/afcon-predictor/internal/db"
	"github.com/AdamBeresnev/afcon-predictor/internal/httputil"
	"github.com/AdamBeresnev/afcon-predictor/internal/middleware"
	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
	"github.com/AdamBeresnev/afcon-predictor/internal/service"
	"github.com/AdamBeresnev/afcon-predictor/internal/store"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/AdamBeresnev/afcon-predictor/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/markbates/goth/gothic"
)

func newRouter(cfg *config.Config, sessionManager *scs.SessionManager, lock prediction.LockPolicy, clock clockwork.Clock) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(sessionManager, store.NewUserStore(db.GetDB())))

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	newPredictionService := func() *service.PredictionService {
		dbConn := db.GetDB()
		return service.NewPredictionService(store.NewTournamentStore(dbConn), store.NewPredictionStore(dbConn), lock, clock)
	}
	newResultService := func() *service.ResultService {
		dbConn := db.GetDB()
		return service.NewResultService(store.NewTournamentStore(dbConn), store.NewPredictionStore(dbConn))
	}
	newUserService := func() *service.UserService {
		dbConn := db.GetDB()
		return service.NewUserService(dbConn, store.NewUserStore(dbConn), cfg.AdminUsernames)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			views.Index(tournament.Steps()).Render(r.Context(), w)
		})

		r.Get("/predictions/{kind}/{code}", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middleware.GetUserIDFromContext(r.Context())
			data, err := newPredictionService().GetStep(r.Context(), userID, chi.URLParam(r, "kind"), chi.URLParam(r, "code"))
			if err != nil {
				httputil.EngineError(w, "Failed to load predictions", err)
				return
			}
			views.StepPage(data).Render(r.Context(), w)
		})

		r.Post("/predictions", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			matchID, err := parseMatchID(r)
			if err != nil {
				httputil.EngineError(w, "Invalid match ID", err)
				return
			}
			userID, _ := middleware.GetUserIDFromContext(r.Context())
			predictionService := newPredictionService()

			_, err = predictionService.Submit(r.Context(), matchID, userID, parseScoreForm(r, "pred"))

			rejected := prediction.IsValidation(err) || errors.Is(err, prediction.ErrLocked)
			if err != nil && !(rejected && isHTMX(r)) {
				httputil.EngineError(w, "Failed to save prediction", err)
				return
			}

			row, loadErr := predictionService.GetMatchPrediction(r.Context(), matchID, userID)
			if loadErr != nil {
				httputil.EngineError(w, "Failed to load prediction", loadErr)
				return
			}
			message := "Saved"
			if err != nil {
				message = userMessage(err)
			}
			views.PredictionForm(*row, message).Render(r.Context(), w)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/admin/results", func(w http.ResponseWriter, r *http.Request) {
				renderResults(w, r, newResultService(), "")
			})

			r.Post("/admin/results", func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					httputil.BadRequest(w, "Invalid form data", err)
					return
				}
				resultService := newResultService()
				matchID, err := parseMatchID(r)
				if err != nil {
					httputil.EngineError(w, "Invalid match ID", err)
					return
				}

				if r.PostFormValue("clear") != "" {
					_, err = resultService.ClearResult(r.Context(), matchID)
				} else {
					_, err = resultService.RecordResult(r.Context(), matchID, parseScoreForm(r, "result"))
				}

				if prediction.IsValidation(err) {
					w.WriteHeader(http.StatusUnprocessableEntity)
					renderResults(w, r, resultService, userMessage(err))
					return
				}
				if err != nil {
					httputil.EngineError(w, "Failed to save result", err)
					return
				}
				http.Redirect(w, r, "/admin/results", http.StatusSeeOther)
			})

			r.Get("/api/scoring", func(w http.ResponseWriter, r *http.Request) {
				rows, err := newResultService().ScoringExport(r.Context())
				if err != nil {
					httputil.InternalServerError(w, "Failed to export predictions", err)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(rows); err != nil {
					httputil.InternalServerError(w, "Failed to encode predictions", err)
				}
			})
		})
	})

	r.Get("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		entries, err := service.NewLeaderboardService(store.NewPredictionStore(dbConn)).GetLeaderboard(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get leaderboard", err)
			return
		}
		views.LeaderboardPage(entries).Render(r.Context(), w)
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))
		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		r = gothic.GetContextWithProvider(r, chi.URLParam(r, "provider"))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		user, err := newUserService().FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		if err := startSession(sessionManager, r, user.ID.String()); err != nil {
			httputil.InternalServerError(w, "Failed to start session", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		views.LoginPage("").Render(r.Context(), w)
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		user, err := newUserService().Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			views.LoginPage(err.Error()).Render(r.Context(), w)
			return
		}
		if err != nil {
			httputil.InternalServerError(w, "Failed to log in", err)
			return
		}

		if err := startSession(sessionManager, r, user.ID.String()); err != nil {
			httputil.InternalServerError(w, "Failed to start session", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	r.Get("/signup", func(w http.ResponseWriter, r *http.Request) {
		views.SignupPage("").Render(r.Context(), w)
	})

	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		user, err := newUserService().Signup(r.Context(), service.SignupInput{
			FullName: r.PostFormValue("full_name"),
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		})
		if err != nil {
			var validationErrs validator.ValidationErrors
			switch {
			case errors.Is(err, service.ErrUsernameTaken):
				w.WriteHeader(http.StatusConflict)
				views.SignupPage(err.Error()).Render(r.Context(), w)
			case errors.As(err, &validationErrs):
				w.WriteHeader(http.StatusUnprocessableEntity)
				views.SignupPage(signupMessage(validationErrs)).Render(r.Context(), w)
			default:
				httputil.InternalServerError(w, "Failed to sign up", err)
			}
			return
		}

		if err := startSession(sessionManager, r, user.ID.String()); err != nil {
			httputil.InternalServerError(w, "Failed to start session", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		if isHTMX(r) {
			w.Header().Set("HX-Redirect", "/login")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})

	return r
}

func renderResults(w http.ResponseWriter, r *http.Request, resultService *service.ResultService, message string) {
	matches, err := resultService.ListMatches(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list matches", err)
		return
	}
	views.AdminResultsPage(views.PrepareStageSections(matches), message).Render(r.Context(), w)
}

// startSession issues a fresh session token and stores the user on it
func startSession(sessionManager *scs.SessionManager, r *http.Request, userID string) error {
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	sessionManager.Put(r.Context(), middleware.SessionUserKey, userID)
	return nil
}

func signupMessage(errs validator.ValidationErrors) string {
	switch errs[0].Field() {
	case "FullName":
		return "Enter your full name"
	case "Username":
		return "Username must be 3 to 30 letters or digits"
	case "Password":
		return "Password must be 8 to 72 characters"
	default:
		return errs[0].Error()
	}
}
