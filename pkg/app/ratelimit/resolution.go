package ratelimit

import (
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
)

// Unlimited is the limit value meaning no rate limit applies.
const Unlimited int64 = -1

type Kind int

const (
	KindNoLimit Kind = iota
	KindBlocked
	KindBounded
)

func (k Kind) String() string {
	switch k {
	case KindNoLimit:
		return "no_limit"
	case KindBlocked:
		return "blocked"
	case KindBounded:
		return "bounded"
	default:
		return "unknown"
	}
}

type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingAddress
	ReasonInvalidToken
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingAddress:
		return "missing remote address"
	case ReasonInvalidToken:
		return "invalid token"
	default:
		return "none"
	}
}

// Resolution decides how a request is metered. Key and Limit are only set for KindBounded,
// Reason only for KindBlocked.
type Resolution struct {
	Kind   Kind
	Reason Reason
	Key    string
	Limit  int64
}

func NoLimit() Resolution {
	return Resolution{Kind: KindNoLimit, Limit: Unlimited}
}

func Blocked(reason Reason) Resolution {
	return Resolution{Kind: KindBlocked, Reason: reason}
}

func Bounded(key string, limit int64) Resolution {
	return Resolution{Kind: KindBounded, Key: key, Limit: limit}
}

type ResolveInput struct {
	// Extraction is nil when no bearer credential was presented.
	Extraction    *jwt.Extraction
	RemoteAddress string
	DefaultLimit  int64
	WhiteList     []string
	Prefix        string
}

// Resolve maps the request identity onto a metering decision without touching the store.
func Resolve(in ResolveInput) Resolution {
	if in.Extraction == nil {
		if in.DefaultLimit == Unlimited {
			return NoLimit()
		}
		if in.RemoteAddress == "" {
			return Blocked(ReasonMissingAddress)
		}
		for _, allowed := range in.WhiteList {
			if allowed == in.RemoteAddress {
				return NoLimit()
			}
		}
		return Bounded(in.Prefix+in.RemoteAddress, in.DefaultLimit)
	}

	if !in.Extraction.Valid() {
		return Blocked(ReasonInvalidToken)
	}

	claims := in.Extraction.Claims
	if claims.UserRateLimit == Unlimited {
		return NoLimit()
	}
	return Bounded(in.Prefix+claims.UserID, claims.UserRateLimit)
}
