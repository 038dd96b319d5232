package service

import "errors"

var (
	ErrRoundLocked     = errors.New("round is locked")
	ErrUnknownTeam     = errors.New("tip does not name either team")
	ErrInvalidWinner   = errors.New("winner must be draw or one of the match teams")
	ErrMatchNotFound   = errors.New("match not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrRoundNotFound   = errors.New("round has no matches")
	ErrTooManyPicks    = errors.New("too many picks in one request")
	ErrPartialScore    = errors.New("home and away scores must be given together")
	ErrInvalidPIN      = errors.New("invalid PIN")
	ErrUnauthenticated = errors.New("unauthenticated")
)
