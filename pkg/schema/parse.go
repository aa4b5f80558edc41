package schema

import (
	"invite.link/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ParseGroup validates a raw group payload and returns it typed.
func ParseGroup(data []byte) (models.Group, error) {
	v, err := decode(data)
	if err != nil {
		return models.Group{}, err
	}
	if err := ValidateGroup(v); err != nil {
		return models.Group{}, err
	}
	var g models.Group
	if err := convert(v, &g); err != nil {
		return models.Group{}, err
	}
	normalizeGroup(&g)
	return g, nil
}

// ParseGuests validates a raw array of guests.
func ParseGuests(data []byte) ([]models.Guest, error) {
	v, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateGuests(v); err != nil {
		return nil, err
	}
	guests := []models.Guest{}
	if err := convert(v, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// ParseRSVPResponse validates a submission answer. A null or missing group is
// reported as a nil Group.
func ParseRSVPResponse(data []byte) (models.RSVPResponse, error) {
	v, err := decode(data)
	if err != nil {
		return models.RSVPResponse{}, err
	}
	if err := ValidateRSVPResponse(v); err != nil {
		return models.RSVPResponse{}, err
	}
	var resp models.RSVPResponse
	if err := convert(v, &resp); err != nil {
		return models.RSVPResponse{}, err
	}
	normalizeGroup(resp.Group)
	return resp, nil
}

// ParseRSVPRequest validates a submission body. It checks shape only; the
// semantic rules live in models.RSVPRequest.Validate.
func ParseRSVPRequest(data []byte) (models.RSVPRequest, error) {
	v, err := decode(data)
	if err != nil {
		return models.RSVPRequest{}, err
	}
	if err := ValidateRSVPRequest(v); err != nil {
		return models.RSVPRequest{}, err
	}
	var req models.RSVPRequest
	if err := convert(v, &req); err != nil {
		return models.RSVPRequest{}, err
	}
	if req.Guests == nil {
		req.Guests = []string{}
	}
	return req, nil
}

// ValidateGroup checks an already decoded value against the group shape.
func ValidateGroup(v interface{}) error {
	return checkObject("$", v, groupShape)
}

// ValidateGuests checks an already decoded array of guests.
func ValidateGuests(v interface{}) error {
	return checkValue("$", v, field{rules: []validation.Rule{isArray}, elem: &guestElem})
}

// ValidateRSVPResponse checks an already decoded submission answer.
func ValidateRSVPResponse(v interface{}) error {
	return checkObject("$", v, rsvpResponseShape)
}

// ValidateRSVPRequest checks an already decoded submission body.
func ValidateRSVPRequest(v interface{}) error {
	return checkObject("$", v, rsvpRequestShape)
}

func normalizeGroup(g *models.Group) {
	if g == nil {
		return
	}
	if g.WeddingGuests == nil {
		g.WeddingGuests = []models.Guest{}
	}
	if g.HennaGuests == nil {
		g.HennaGuests = []models.Guest{}
	}
}
