package constants

import "context"

const HOST_GITHUB = "github"
const HOST_GITEA = "gitea"
const GITHUB_URL = "https://github.com"

const TOKEN_ENV = "GITHUB_ACCESS_TOKEN"

// SELF_NAMESPACE designates the repositories of the authenticated user.
const SELF_NAMESPACE = "-"

const PAGE_SIZE = 50

// DEFAULT_COLOR is used when a host requires a color and none is declared.
const DEFAULT_COLOR = "ededed"

type ContextKey int

const (
	DRY_RUN ContextKey = iota
)

func IsDryRun(ctx context.Context) bool {
	dryRun, ok := ctx.Value(DRY_RUN).(bool)
	return ok && dryRun
}
