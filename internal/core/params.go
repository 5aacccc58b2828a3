package core

import (
	"fmt"
	"strings"
)

// ValidateParams checks in.Params and the pasted input against the
// parameters info requires, in the order info lists them, and reports the
// first that is missing or invalid.
func ValidateParams(info TemplateInfo, in GenerateInput) error {
	for _, p := range info.Params {
		switch p {
		case ParamComponent:
			if strings.TrimSpace(in.Params.Component) == "" {
				return MissingParam(p)
			}
		case ParamLabel:
			if strings.TrimSpace(in.Params.Label) == "" {
				return MissingParam(p)
			}
		case ParamTeams:
			if in.Params.Teams < 1 {
				return InvalidParam(p, "must be a positive number")
			}
			if limit := in.Limits.Teams(); in.Params.Teams > limit {
				return InvalidParam(p, fmt.Sprintf("must be at most %d", limit))
			}
		case ParamData:
			if len(in.Records) == 0 {
				return MissingParam(p)
			}
		case ParamEmails:
			if len(in.Emails) == 0 {
				return MissingParam(p)
			}
		}
	}
	return nil
}
