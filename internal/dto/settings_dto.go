package dto

type SettingsResponse struct {
	UserName       string `json:"user_name"`
	SearchScope    string `json:"search_scope"`
	Theme          string `json:"theme"`
	PreferredModel string `json:"preferred_model"`
}

type UpdateSettingsRequest struct {
	UserName       string `json:"user_name" validate:"omitempty,max=50"`
	SearchScope    string `json:"search_scope" validate:"omitempty,oneof=general news academic"`
	Theme          string `json:"theme" validate:"omitempty,oneof=light dark"`
	PreferredModel string `json:"preferred_model" validate:"omitempty,max=64"`
}
