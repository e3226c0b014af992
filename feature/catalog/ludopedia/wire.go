package ludopedia

import (
	"strings"

	"collection-manager/feature/catalog"
)

// wireGame is the record shape shared by the jogos, jogos/{id} and colecao
// endpoints. Rich fields (tp_jogo, vl_nota, vl_peso, posicao_ranking,
// ds_jogo) only appear on the detail endpoint.
type wireGame struct {
	ID             int64    `json:"id_jogo"`
	Name           string   `json:"nm_jogo"`
	Description    *string  `json:"ds_jogo"`
	YearPublished  *int     `json:"ano_publicacao"`
	YearReleased   *int     `json:"ano_lancamento"`
	Thumb          *string  `json:"thumb"`
	MinPlayers     *int     `json:"qt_jogadores_min"`
	MaxPlayers     *int     `json:"qt_jogadores_max"`
	Playtime       *int     `json:"vl_tempo_jogo"`
	MinAge         *int     `json:"idade_minima"`
	Kind           *string  `json:"tp_jogo"`
	Rating         *float64 `json:"vl_nota"`
	Weight         *float64 `json:"vl_peso"`
	RankPosition   *int     `json:"posicao_ranking"`
	PurchasePrice  *float64 `json:"vl_custo"`
}

func (w wireGame) toGame() catalog.Game {
	g := catalog.Game{
		RemoteID:      w.ID,
		Name:          w.Name,
		Description:   w.Description,
		YearPublished: w.YearPublished,
		Kind:          mapKind(w.Kind),
		MinPlayers:    w.MinPlayers,
		MaxPlayers:    w.MaxPlayers,
		// The API exposes a single playtime value.
		MinPlaytime:   w.Playtime,
		MaxPlaytime:   w.Playtime,
		MinAge:        w.MinAge,
		Rating:        w.Rating,
		Weight:        w.Weight,
		RankPosition:  w.RankPosition,
		PurchasePrice: w.PurchasePrice,
		ImageURL:      w.Thumb,
	}
	if g.YearPublished == nil {
		g.YearPublished = w.YearReleased
	}
	return g
}

// mapKind translates Ludopedia's tp_jogo marker into the normalized kind.
func mapKind(tp *string) catalog.Kind {
	if tp == nil {
		return catalog.KindBase
	}
	switch strings.TrimSpace(*tp) {
	case "E", "EXPANSION", "Expansão":
		return catalog.KindExpansion
	default:
		return catalog.KindBase
	}
}
