package models

// ServerStatus reports whether a game server answers queries
type ServerStatus string

const (
	ServerOnline  ServerStatus = "online"
	ServerOffline ServerStatus = "offline"
)

// GameServer is a community server shown in the server browser
type GameServer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	IP         string       `json:"ip"`
	Port       string       `json:"port"`
	Map        string       `json:"map"`
	Players    int          `json:"players"`
	MaxPlayers int          `json:"max_players"`
	Status     ServerStatus `json:"status"`
	Rating     float64      `json:"rating"`
	Reviews    int          `json:"reviews"`
	Ping       int          `json:"ping"`
	GameMode   string       `json:"game_mode"`
	Region     string       `json:"region"`
}

// Address returns the connect address in ip:port form
func (s GameServer) Address() string {
	return s.IP + ":" + s.Port
}

// ServerList is the response body of the server browser endpoint
type ServerList struct {
	Servers     []GameServer `json:"servers"`
	TopRated    []GameServer `json:"top_rated"`
	OnlineCount int          `json:"online_count"`
	TotalCount  int          `json:"total_count"`
}
