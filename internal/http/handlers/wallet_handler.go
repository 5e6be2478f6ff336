// README: Wallet handlers: balance, ledger entries, and cashouts.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuseats/internal/http/middleware"
	"campuseats/internal/modules/wallet"
	"campuseats/internal/types"
)

type WalletHandler struct {
	wallets *wallet.Service
}

func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{wallets: svc}
}

func walletKind(raw string) (wallet.Kind, bool) {
	switch wallet.Kind(raw) {
	case wallet.KindDasher, wallet.KindShop:
		return wallet.Kind(raw), true
	}
	return "", false
}

func (h *WalletHandler) Balance(c *gin.Context) {
	kind, ok := walletKind(c.Param("kind"))
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown wallet kind")
		return
	}
	bal, err := h.wallets.Balance(c.Request.Context(), types.ID(c.Param("id")), kind)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"owner_id": c.Param("id"), "kind": kind, "balance": bal})
}

func (h *WalletHandler) Entries(c *gin.Context) {
	kind, ok := walletKind(c.Param("kind"))
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown wallet kind")
		return
	}
	entries, err := h.wallets.Entries(c.Request.Context(), types.ID(c.Param("id")), kind)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}

type cashoutReq struct {
	Amount int64 `json:"amount"`
}

// Cashout debits the caller's own wallet; the ledger keeps the withdrawal row.
func (h *WalletHandler) Cashout(c *gin.Context) {
	kind, ok := walletKind(c.Param("kind"))
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown wallet kind")
		return
	}
	owner := c.Param("id")
	if middleware.CallerRole(c) != "admin" && middleware.CallerUID(c) != owner {
		writeError(c, http.StatusForbidden, "cannot cash out another wallet")
		return
	}
	var req cashoutReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		writeError(c, http.StatusBadRequest, "amount must be positive")
		return
	}
	if err := h.wallets.Debit(c.Request.Context(), types.ID(owner), kind, req.Amount, "cashout", ""); err != nil {
		writeServiceError(c, err)
		return
	}
	bal, err := h.wallets.Balance(c.Request.Context(), types.ID(owner), kind)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"owner_id": owner, "kind": kind, "balance": bal})
}
