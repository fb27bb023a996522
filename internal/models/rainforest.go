package models

// Upstream payload shapes for the Rainforest-style product data API.
// Search results and full product detail carry different subsets of the
// same data; both are normalized into CanonicalProduct by the client.

type RainforestPrice struct {
	Value  float64 `json:"value"`
	Raw    string  `json:"raw"`
	Symbol string  `json:"symbol"`
}

type SearchResultItem struct {
	ASIN         string          `json:"asin"`
	Title        string          `json:"title"`
	Price        RainforestPrice `json:"price"`
	Rating       float64         `json:"rating"`
	RatingsTotal int             `json:"ratings_total"`
	Department   string          `json:"department"`
	Brand        string          `json:"brand"`
	IsPrime      bool            `json:"is_prime"`
	Image        string          `json:"image"`
	Link         string          `json:"link"`
}

type SearchResponse struct {
	SearchResults []SearchResultItem `json:"search_results"`
}

type ProductDetail struct {
	ASIN         string `json:"asin"`
	Title        string `json:"title"`
	BuyboxWinner struct {
		Price RainforestPrice `json:"price"`
	} `json:"buybox_winner"`
	Rating       float64 `json:"rating"`
	RatingsTotal int     `json:"ratings_total"`
	Category     struct {
		Name string `json:"name"`
	} `json:"category"`
	Brand        string `json:"brand"`
	Availability struct {
		Raw string `json:"raw"`
	} `json:"availability"`
	MainImage struct {
		Link string `json:"link"`
	} `json:"main_image"`
	Link           string            `json:"link"`
	Description    string            `json:"description"`
	FeatureBullets []string          `json:"feature_bullets"`
	Dimensions     map[string]string `json:"dimensions"`
	Weight         string            `json:"weight"`
}

type ProductResponse struct {
	Product *ProductDetail `json:"product"`
}

type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}
