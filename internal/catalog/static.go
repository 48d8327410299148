package catalog

import (
	"context"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
)

// Genres lists the anime categories offered by the genre picker
var Genres = []string{
	domain.CategoryAll,
	"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Horror",
	"Romance", "Sci-Fi", "Slice of Life", "Sports", "Supernatural", "Thriller",
}

// MarketCategories lists the asset categories of the market board
var MarketCategories = []string{
	domain.CategoryAll,
	"Layer 1", "Layer 2", "DeFi", "Payments", "Meme", "Exchange",
}

// StaticSource serves a fixed in-memory item list. It cannot fail.
type StaticSource struct {
	items []*domain.Item
}

// NewStaticSource creates a source over items. The items are shared, not copied,
// so quote updates applied by the ticker survive a refetch.
func NewStaticSource(items []*domain.Item) *StaticSource {
	return &StaticSource{items: items}
}

// NewAnimeSource returns a static source over the built-in anime catalog
func NewAnimeSource() *StaticSource {
	return NewStaticSource(animeCatalog())
}

// NewMarketSource returns a static source over the built-in market board
func NewMarketSource() *StaticSource {
	return NewStaticSource(marketBoard())
}

// FetchItems returns items matching query, or the items tagged category.
// A non-empty query overrides the category.
func (s *StaticSource) FetchItems(ctx context.Context, query, category string) ([]*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query != "" {
		return search.Filter(s.items, query, domain.CategoryAll), nil
	}
	return search.Filter(s.items, "", category), nil
}

// Len returns the number of items in the source
func (s *StaticSource) Len() int {
	return len(s.items)
}

func trailer(youtubeID string) *domain.Trailer {
	return &domain.Trailer{
		YouTubeID: youtubeID,
		URL:       "https://www.youtube.com/watch?v=" + youtubeID,
		EmbedURL:  "https://www.youtube.com/embed/" + youtubeID,
	}
}

func animeCatalog() []*domain.Item {
	return []*domain.Item{
		{
			ID: "a-fmab", Title: "Fullmetal Alchemist: Brotherhood", NativeTitle: "鋼の錬金術師 FULLMETAL ALCHEMIST",
			Year: 2009, Score: domain.Float64(9.10), Tags: []string{"Action", "Adventure", "Drama", "Fantasy"},
			Synopsis: "Two brothers search for the Philosopher's Stone after a failed alchemical ritual costs them dearly.",
			Status:   domain.StatusCompleted, Trailer: trailer("--IcmZkvL0Q"),
			Episodes: 64, Duration: "24 min per ep", Rating: "R - 17+",
		},
		{
			ID: "a-steins", Title: "Steins;Gate", NativeTitle: "シュタインズ・ゲート",
			Year: 2011, Score: domain.Float64(9.07), Tags: []string{"Drama", "Sci-Fi", "Thriller"},
			Synopsis: "A self-proclaimed mad scientist discovers that his microwave can send messages to the past.",
			Status:   domain.StatusCompleted, Trailer: trailer("27OZc-ku6is"),
			Episodes: 24, Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-frieren", Title: "Frieren: Beyond Journey's End", NativeTitle: "葬送のフリーレン",
			Year: 2023, Score: domain.Float64(9.31), Tags: []string{"Adventure", "Drama", "Fantasy"},
			Synopsis: "An elf mage reflects on the fleeting lives of her former party after their quest is over.",
			Status:   domain.StatusCompleted, Trailer: trailer("ZEkwCGJ3o7M"),
			Episodes: 28, Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-naruto", Title: "Naruto", NativeTitle: "ナルト",
			Year: 2002, Score: domain.Float64(8.00), Tags: []string{"Action", "Adventure", "Fantasy"},
			Synopsis: "A young ninja with a sealed demon fox seeks recognition and dreams of becoming Hokage.",
			Status:   domain.StatusCompleted, Trailer: trailer("j2hiC9BmJlQ"),
			Episodes: 220, Duration: "23 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-bleach", Title: "Bleach", NativeTitle: "ブリーチ",
			Year: 2004, Score: domain.Float64(7.92), Tags: []string{"Action", "Adventure", "Supernatural"},
			Synopsis: "A teenager gains the powers of a Soul Reaper and must defend the living from Hollows.",
			Status:   domain.StatusCompleted,
			Episodes: 366, Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-kaguya", Title: "Kaguya-sama: Love Is War", NativeTitle: "かぐや様は告らせたい",
			Year: 2019, Score: domain.Float64(8.40), Tags: []string{"Comedy", "Romance"},
			Synopsis: "Two student council geniuses scheme to make the other confess first.",
			Status:   domain.StatusCompleted, Trailer: trailer("rZ95aZmQu_8"),
			Episodes: 12, Duration: "25 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-yuru", Title: "Laid-Back Camp", NativeTitle: "ゆるキャン△",
			Year: 2018, Score: domain.Float64(8.25), Tags: []string{"Comedy", "Slice of Life"},
			Synopsis: "High school girls discover the quiet joys of winter camping around Mount Fuji.",
			Status:   domain.StatusCompleted,
			Episodes: 12, Duration: "23 min per ep", Rating: "G - All Ages",
		},
		{
			ID: "a-haikyu", Title: "Haikyu!!", NativeTitle: "ハイキュー!!",
			Year: 2014, Score: domain.Float64(8.44), Tags: []string{"Comedy", "Sports", "Drama"},
			Synopsis: "A short but determined middle blocker joins a fallen volleyball powerhouse.",
			Status:   domain.StatusCompleted, Trailer: trailer("JOGp2c7-cKc"),
			Episodes: 25, Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-mushishi", Title: "Mushishi", NativeTitle: "蟲師",
			Year: 2005, Score: domain.Float64(8.66), Tags: []string{"Slice of Life", "Supernatural", "Fantasy"},
			Synopsis: "A wanderer studies mushi, primitive life forms that cause strange phenomena.",
			Status:   domain.StatusCompleted,
			Episodes: 26, Duration: "25 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-parasyte", Title: "Parasyte: The Maxim", NativeTitle: "寄生獣 セイの格率",
			Year: 2014, Score: domain.Float64(8.32), Tags: []string{"Action", "Horror", "Sci-Fi"},
			Synopsis: "A parasite fails to take over a student's brain and settles in his right hand instead.",
			Status:   domain.StatusCompleted, Trailer: trailer("1bs8dRvD4uE"),
			Episodes: 24, Duration: "23 min per ep", Rating: "R - 17+",
		},
		{
			ID: "a-monster", Title: "Monster", NativeTitle: "モンスター",
			Year: 2004, Score: domain.Float64(8.88), Tags: []string{"Drama", "Thriller", "Horror"},
			Synopsis: "A surgeon hunts the boy whose life he once saved, now a charismatic killer.",
			Status:   domain.StatusCompleted, Trailer: trailer("9aS7Q7y7rH4"),
			Episodes: 74, Duration: "24 min per ep", Rating: "R+ - Mild Nudity",
		},
		{
			ID: "a-toradora", Title: "Toradora!", NativeTitle: "とらドラ!",
			Year: 2008, Score: domain.Float64(8.06), Tags: []string{"Comedy", "Drama", "Romance"},
			Synopsis: "A feared delinquent-looking boy and a tiny fierce girl team up to win over each other's crushes.",
			Status:   domain.StatusCompleted,
			Episodes: 25, Duration: "23 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-dungeon", Title: "Delicious in Dungeon", NativeTitle: "ダンジョン飯",
			Year: 2024, Score: domain.Float64(8.60), Tags: []string{"Adventure", "Comedy", "Fantasy"},
			Synopsis: "Adventurers cook the monsters they defeat while racing to rescue a friend from a dragon.",
			Status:   domain.StatusOngoing, Trailer: trailer("3ZnSMLEBMp0"),
			Episodes: 24, Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-onepiece", Title: "One Piece", NativeTitle: "ワンピース",
			Year: 1999, Score: domain.Float64(8.72), Tags: []string{"Action", "Adventure", "Fantasy"},
			Synopsis: "A rubber-bodied pirate sets out to find the legendary treasure and become King of the Pirates.",
			Status:   domain.StatusOngoing, Trailer: trailer("MCb13lbVGE0"),
			Duration: "24 min per ep", Rating: "PG-13",
		},
		{
			ID: "a-sakamoto", Title: "Sakamoto Days", NativeTitle: "サカモトデイズ",
			Year: 2025, Tags: []string{"Action", "Comedy"},
			Synopsis: "A legendary hitman retires to run a convenience store, but his past keeps coming back.",
			Status:   domain.StatusUpcoming,
			Rating:   "R - 17+",
		},
		{
			ID: "a-chainsaw", Title: "Chainsaw Man", NativeTitle: "チェンソーマン",
			Year: 2022, Score: domain.Float64(8.47), Tags: []string{"Action", "Horror", "Supernatural"},
			Synopsis: "A broke devil hunter merges with his chainsaw devil pet and joins a public safety unit.",
			Status:   domain.StatusCompleted, Trailer: trailer("q15CRdE5Bv0"),
			Episodes: 12, Duration: "24 min per ep", Rating: "R - 17+",
		},
	}
}

func quote(price, change float64) *domain.Quote {
	return &domain.Quote{Price: price, ChangePct: change}
}

func marketBoard() []*domain.Item {
	return []*domain.Item{
		{ID: "m-btc", Title: "Bitcoin", NativeTitle: "BTC", Year: 2009, Tags: []string{"Layer 1", "Payments"},
			Synopsis: "The first decentralized proof-of-work currency.", Status: domain.StatusOngoing, Quote: quote(67420.15, 2.34)},
		{ID: "m-eth", Title: "Ethereum", NativeTitle: "ETH", Year: 2015, Tags: []string{"Layer 1", "DeFi"},
			Synopsis: "Programmable settlement layer for smart contracts.", Status: domain.StatusOngoing, Quote: quote(3521.80, 1.87)},
		{ID: "m-bnb", Title: "BNB", NativeTitle: "BNB", Year: 2017, Tags: []string{"Exchange", "Layer 1"},
			Synopsis: "Utility token of a large centralized exchange and its chain.", Status: domain.StatusOngoing, Quote: quote(598.42, -0.56)},
		{ID: "m-sol", Title: "Solana", NativeTitle: "SOL", Year: 2020, Tags: []string{"Layer 1", "DeFi"},
			Synopsis: "High-throughput chain with a proof-of-history clock.", Status: domain.StatusOngoing, Quote: quote(172.35, 5.12)},
		{ID: "m-xrp", Title: "XRP", NativeTitle: "XRP", Year: 2012, Tags: []string{"Payments"},
			Synopsis: "Ledger focused on cross-border settlement.", Status: domain.StatusOngoing, Quote: quote(0.5234, -1.23)},
		{ID: "m-ada", Title: "Cardano", NativeTitle: "ADA", Year: 2017, Tags: []string{"Layer 1"},
			Synopsis: "Proof-of-stake platform built from peer-reviewed research.", Status: domain.StatusOngoing, Quote: quote(0.4512, 0.87)},
		{ID: "m-doge", Title: "Dogecoin", NativeTitle: "DOGE", Year: 2013, Tags: []string{"Meme", "Payments"},
			Synopsis: "The original meme coin.", Status: domain.StatusOngoing, Quote: quote(0.1623, 8.45)},
		{ID: "m-arb", Title: "Arbitrum", NativeTitle: "ARB", Year: 2023, Tags: []string{"Layer 2", "DeFi"},
			Synopsis: "Optimistic rollup scaling Ethereum.", Status: domain.StatusOngoing, Quote: quote(1.12, -3.40)},
		{ID: "m-link", Title: "Chainlink", NativeTitle: "LINK", Year: 2017, Tags: []string{"DeFi"},
			Synopsis: "Decentralized oracle network.", Status: domain.StatusOngoing, Quote: quote(14.87, 3.21)},
		{ID: "m-pepe", Title: "Pepe", NativeTitle: "PEPE", Year: 2023, Tags: []string{"Meme"},
			Synopsis: "A frog-themed meme token.", Status: domain.StatusOngoing, Quote: quote(0.00000812, -6.75)},
	}
}
