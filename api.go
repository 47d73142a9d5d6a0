package main

import "time"

// API essential types

type SessionUser struct {
	UserID      int    `json:"user_id"`
	Role        string `json:"role"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type SeriesCountry struct {
	CountryID   int    `json:"country_id"`
	CountryName string `json:"country_name"`
}

type SeriesSummary struct {
	SeriesID         int             `json:"series_id"`
	Name             string          `json:"name"`
	EpisodeCount     int             `json:"episode_count"`
	OriginalLanguage string          `json:"original_language"`
	Genres           string          `json:"genres"`
	Countries        []SeriesCountry `json:"countries"`
	AvgRating        *float64        `json:"avg_rating"`
	FeedbackCount    int             `json:"feedback_count"`
}

type ReleaseCountry struct {
	CountryID   int    `json:"country_id"`
	CountryName string `json:"country_name,omitempty"`
	ReleaseDate string `json:"release_date"`
}

type Episode struct {
	EpisodeID     int       `json:"episode_id"`
	EpisodeNumber int       `json:"episode_number"`
	ScheduleStart time.Time `json:"schedule_start"`
	ScheduleEnd   time.Time `json:"schedule_end"`
	ViewerCount   int       `json:"viewer_count"`
	Interrupted   bool      `json:"interrupted"`
}

type SeriesDetail struct {
	SeriesID         int              `json:"series_id"`
	Name             string           `json:"name"`
	EpisodeCount     int              `json:"episode_count"`
	OriginalLanguage string           `json:"original_language"`
	Genres           []string         `json:"genres"`
	Subtitles        []string         `json:"subtitles"`
	Dubbings         []string         `json:"dubbings"`
	ReleaseCountries []ReleaseCountry `json:"release_countries"`
	Episodes         []Episode        `json:"episodes"`
}

type FeedbackEntry struct {
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
	PostedOn  string `json:"posted_on"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type FeedbackStats struct {
	AvgRating     *float64 `json:"avg_rating"`
	FeedbackCount int      `json:"feedback_count"`
}

type OwnFeedback struct {
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
	PostedOn string `json:"posted_on"`
}

type MyFeedbackEntry struct {
	SeriesID   int    `json:"series_id"`
	SeriesName string `json:"series_name"`
	Rating     int    `json:"rating"`
	Body       string `json:"body"`
	PostedOn   string `json:"posted_on"`
}

// API request types

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	CountryID int    `json:"country_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateSeriesRequest struct {
	Name             string `json:"name"`
	EpisodeCount     int    `json:"episode_count"`
	OriginalLanguage string `json:"original_language"`
}

type UpdateSeriesRequest struct {
	Name             string           `json:"name"`
	EpisodeCount     int              `json:"episode_count"`
	OriginalLanguage string           `json:"original_language"`
	Genres           []string         `json:"genres"`
	Subtitles        []string         `json:"subtitles"`
	Dubbings         []string         `json:"dubbings"`
	ReleaseCountries []ReleaseCountry `json:"release_countries"`
}

type EpisodeRequest struct {
	EpisodeNumber int    `json:"episode_number"`
	ScheduleStart string `json:"schedule_start"`
	ScheduleEnd   string `json:"schedule_end"`
	ViewerCount   int    `json:"viewer_count"`
	Interrupted   bool   `json:"interrupted"`
}

type PhouseRequest struct {
	Name            string `json:"name"`
	Street          string `json:"street"`
	City            string `json:"city"`
	State           string `json:"state"`
	Zipcode         string `json:"zipcode"`
	EstablishedYear int    `json:"established_year"`
	CountryID       int    `json:"country_id"`
}

type ProducerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CountryID int    `json:"country_id"`
}

type CollaborationRequest struct {
	ProducerID int `json:"producer_id"`
	PhouseID   int `json:"phouse_id"`
}

type ContractRequest struct {
	IssuedDate   string  `json:"issued_date"`
	EpisodePrice float64 `json:"episode_price"`
	Renewable    bool    `json:"renewable"`
	PhouseID     int     `json:"phouse_id"`
	SeriesID     int     `json:"series_id"`
}

type UpdateViewerRequest struct {
	Street        string  `json:"street"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zipcode       string  `json:"zipcode"`
	MonthlyCharge float64 `json:"monthly_charge"`
	CountryID     int     `json:"country_id"`
}

type DeleteFeedbackRequest struct {
	Account  int `json:"account"`
	SeriesID int `json:"series_id"`
}

type SubmitFeedbackRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type UpdateProfileRequest struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	CountryID int    `json:"country_id"`
}

type ChangePasswordRequest struct {
	OldPassword    string `json:"old_password"`
	NewPassword    string `json:"new_password"`
	SecurityAnswer string `json:"security_answer"`
}

// API response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

type MeResponse struct {
	LoggedIn bool         `json:"logged_in"`
	User     *SessionUser `json:"user,omitempty"`
}

type CreateSeriesResponse struct {
	Message  string `json:"message"`
	SeriesID int    `json:"series_id"`
}

type AdminSeriesSummary struct {
	SeriesID         int      `json:"series_id"`
	Name             string   `json:"name"`
	EpisodeCount     int      `json:"episode_count"`
	OriginalLanguage string   `json:"original_language"`
	AvgRating        *float64 `json:"avg_rating"`
	Genres           string   `json:"genres"`
}

type AdminSeriesDetail struct {
	SeriesID         int              `json:"series_id"`
	Name             string           `json:"name"`
	EpisodeCount     int              `json:"episode_count"`
	OriginalLanguage string           `json:"original_language"`
	Genres           []string         `json:"genres"`
	Subtitles        []string         `json:"subtitles"`
	Dubbings         []string         `json:"dubbings"`
	ReleaseCountries []ReleaseCountry `json:"release_countries"`
}

type Phouse struct {
	PhouseID        int    `json:"phouse_id"`
	Name            string `json:"name"`
	Street          string `json:"street"`
	City            string `json:"city"`
	State           string `json:"state"`
	Zipcode         string `json:"zipcode"`
	EstablishedYear int    `json:"established_year"`
	CountryID       int    `json:"country_id"`
	CountryName     string `json:"country_name"`
}

type Producer struct {
	ProducerID  int    `json:"producer_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CountryID   int    `json:"country_id"`
	CountryName string `json:"country_name"`
}

type Collaboration struct {
	ProducerID   int    `json:"producer_id"`
	PhouseID     int    `json:"phouse_id"`
	ProducerName string `json:"producer_name"`
	PhouseName   string `json:"phouse_name"`
}

type Contract struct {
	ContractID   int     `json:"contract_id"`
	IssuedDate   string  `json:"issued_date"`
	EpisodePrice float64 `json:"episode_price"`
	Renewable    bool    `json:"renewable"`
	PhouseID     int     `json:"phouse_id"`
	PhouseName   string  `json:"phouse_name"`
	SeriesID     int     `json:"series_id"`
	SeriesName   string  `json:"series_name"`
}

type ViewerSummary struct {
	Account       int     `json:"account"`
	Username      string  `json:"username"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	MonthlyCharge float64 `json:"monthly_charge"`
	OpenDate      string  `json:"open_date"`
	CountryName   string  `json:"country_name"`
	FeedbackCount int     `json:"feedback_count"`
}

type ViewerDetail struct {
	Account       int     `json:"account"`
	Username      string  `json:"username"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zipcode       string  `json:"zipcode"`
	MonthlyCharge float64 `json:"monthly_charge"`
	CountryID     int     `json:"country_id"`
}

type AdminFeedbackEntry struct {
	Account    int    `json:"account"`
	SeriesID   int    `json:"series_id"`
	SeriesName string `json:"series_name"`
	Username   string `json:"username"`
	Rating     int    `json:"rating"`
	Body       string `json:"body"`
	PostedOn   string `json:"posted_on"`
}

type TopSeries struct {
	Name      string  `json:"name"`
	AvgRating float64 `json:"avg_rating"`
}

type StatsResponse struct {
	TotalSeries    int         `json:"total_series"`
	TotalViewers   int         `json:"total_viewers"`
	TotalFeedback  int         `json:"total_feedback"`
	RecentFeedback int         `json:"recent_feedback"`
	TopSeries      []TopSeries `json:"top_series"`
}

type ViewerGrowthEntry struct {
	Month      string `json:"month"`
	NewViewers int    `json:"new_viewers"`
}

type RevenueGrowthEntry struct {
	Month        string  `json:"month"`
	RevenueNew   float64 `json:"revenue_new"`
	RevenueTotal float64 `json:"revenue_total"`
}

type HistoryEntry struct {
	ULID        string    `json:"ulid"`
	AdminID     int       `json:"admin_id"`
	AdminName   string    `json:"admin_name"`
	ActedAt     time.Time `json:"acted_at"`
	TargetTable string    `json:"target_table"`
	Action      string    `json:"action"`
	Statement   string    `json:"statement"`
}

type SeriesFeedbackResponse struct {
	FeedbackList []FeedbackEntry `json:"feedback_list"`
	Stats        FeedbackStats   `json:"stats"`
	UserFeedback *OwnFeedback    `json:"user_feedback"`
}

type Profile struct {
	Account       int     `json:"account"`
	Username      string  `json:"username"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zipcode       string  `json:"zipcode"`
	MonthlyCharge float64 `json:"monthly_charge"`
	CountryName   string  `json:"country_name"`
}

type SecurityQuestionResponse struct {
	SecurityQuestion string `json:"security_question"`
}

type Recommendation struct {
	SeriesID      int     `json:"series_id"`
	Name          string  `json:"name"`
	AvgRating     float64 `json:"avg_rating"`
	FeedbackCount int     `json:"feedback_count"`
}

type ReportResponse struct {
	Query  string      `json:"query"`
	Result interface{} `json:"result"`
}
