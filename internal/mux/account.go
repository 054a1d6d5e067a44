package mux

import (
	"errors"
	"net/http"

	"videopoker-server/internal/jwt"
	"videopoker-server/internal/util"
	"videopoker-server/pkg/economy"
	"videopoker-server/pkg/videopoker"
)

// randomNameAttempts is how many friendly names login tries before falling back to a uuid name
const randomNameAttempts = 3

type credentialsPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type accountResponse struct {
	*videopoker.Account
	Token string `json:"token"`
}

func (m *Mux) postSignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cp credentialsPayload
		if !decodeRequest(w, r, &cp) {
			return
		}

		account, err := m.machine.SignUp(r.Context(), cp.Name, cp.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeAccount(w, account)
	}
}

func (m *Mux) postSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cp credentialsPayload
		if !decodeRequest(w, r, &cp) {
			return
		}

		account, err := m.machine.SignIn(r.Context(), cp.Name, cp.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeAccount(w, account)
	}
}

// postLogin creates an account on first use
// The name must be new, so logging in twice with the same name fails like a second signup.
// Without a name, the account gets a random one.
func (m *Mux) postLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cp credentialsPayload
		if !decodeRequest(w, r, &cp) {
			return
		}

		if cp.Name != "" {
			account, err := m.machine.SignUp(r.Context(), cp.Name, cp.Password)
			if err != nil {
				writeError(w, err)
				return
			}

			writeAccount(w, account)
			return
		}

		var err error
		for i := 0; i <= randomNameAttempts; i++ {
			name := util.GetRandomName()
			if i == randomNameAttempts {
				// the friendly names keep colliding, fall back to one that cannot
				name = util.RandomName()
			}

			var account *videopoker.Account
			account, err = m.machine.SignUp(r.Context(), name, cp.Password)
			if err == nil {
				writeAccount(w, account)
				return
			}

			if !errors.Is(err, economy.ErrDuplicateName) {
				break
			}
		}

		writeError(w, err)
	}
}

func writeAccount(w http.ResponseWriter, account *videopoker.Account) {
	token, err := jwt.Sign(account.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		Account: account,
		Token:   token,
	})
}
