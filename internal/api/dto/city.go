package dto

type CityResponse struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type ListCitiesResponse struct {
	Cities []CityResponse `json:"cities"`
}

type AddCityRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type RemoveCityRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
