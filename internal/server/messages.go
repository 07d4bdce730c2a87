package server

import "github.com/openmonopoly/monopoly-server-go/internal/game"

// Client message types.
const (
	msgCreateGame = "CREATE_GAME"
	msgJoinGame   = "JOIN_GAME"
	msgAction     = "ACTION"
	msgGetView    = "GET_VIEW"
	msgSaveGame   = "SAVE_GAME"
	msgLoadGame   = "LOAD_GAME"
	msgListSaves  = "LIST_SAVES"
)

// Server message types.
const (
	msgGameCreated  = "GAME_CREATED"
	msgJoined       = "JOINED"
	msgView         = "VIEW"
	msgActionOK     = "ACTION_OK"
	msgError        = "ERROR"
	msgNotification = "NOTIFICATION"
	msgGameSaved    = "GAME_SAVED"
	msgGameLoaded   = "GAME_LOADED"
	msgSaveList     = "SAVE_LIST"
)

// tradePayload mirrors game.TradeOffer on the wire.
type tradePayload struct {
	Partner        int   `json:"partner"`
	GiveProperties []int `json:"give_properties,omitempty"`
	TakeProperties []int `json:"take_properties,omitempty"`
	GiveCash       int   `json:"give_cash,omitempty"`
	TakeCash       int   `json:"take_cash,omitempty"`
}

// clientMessage is the envelope for everything a client sends.
type clientMessage struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	Seat   int    `json:"seat,omitempty"`

	// CREATE_GAME fields.
	Players []string `json:"players,omitempty"`

	// ACTION fields.
	Action    string        `json:"action,omitempty"`
	TileIndex int           `json:"tile_index,omitempty"`
	Amount    int           `json:"amount,omitempty"`
	Trade     *tradePayload `json:"trade,omitempty"`
}

// serverMessage is the envelope for everything the server sends.
type serverMessage struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	Error  string `json:"error,omitempty"`

	View  *game.EngineGameView `json:"view,omitempty"`
	Event string               `json:"event,omitempty"`
	Saves []saveSummary        `json:"saves,omitempty"`
}

// saveSummary is a savegame listing row on the wire.
type saveSummary struct {
	GameID    string   `json:"game_id"`
	Players   []string `json:"players"`
	Turn      int      `json:"turn"`
	UpdatedAt string   `json:"updated_at"`
}

func (m *clientMessage) tradeOffer() *game.TradeOffer {
	if m.Trade == nil {
		return nil
	}
	return &game.TradeOffer{
		Partner:        m.Trade.Partner,
		GiveProperties: m.Trade.GiveProperties,
		TakeProperties: m.Trade.TakeProperties,
		GiveCash:       m.Trade.GiveCash,
		TakeCash:       m.Trade.TakeCash,
	}
}
