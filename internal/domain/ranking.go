package domain

// Результат игрока в таблице лидеров (time в секундах)
type UsersScore struct {
	Name string `json:"name" bson:"name"`
	Time int    `json:"time" bson:"time"`
}

// Таблица лидеров одной игры, один документ на gameId
type GameRankings struct {
	GameID       int          `json:"gameId" bson:"gameId"`
	SinglePlayer []UsersScore `json:"singlePlayer" bson:"singlePlayer"`
	MultiPlayer  []UsersScore `json:"multiPlayer" bson:"multiPlayer"`
}

// SeedScores возвращает стартовые результаты ботов.
// Каждый вызов отдает новый слайс, чтобы записи разных игр не делили память
func SeedScores() []UsersScore {
	return []UsersScore{
		{Name: "IRONBOT", Time: 800},
		{Name: "GLADOS", Time: 900},
		{Name: "ROBOTO", Time: 1000},
	}
}

// NewSeedRankings создает стартовую таблицу лидеров для игры
func NewSeedRankings(gameID int) *GameRankings {
	return &GameRankings{
		GameID:       gameID,
		SinglePlayer: SeedScores(),
		MultiPlayer:  SeedScores(),
	}
}
