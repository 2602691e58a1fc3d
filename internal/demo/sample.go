package demo

import "jjdiverge.dev/jjdiverge/internal/jj"

// NewSampleRepo returns a repository with two divergent changes: one whose
// revisions are identical and one whose revisions disagree.
func NewSampleRepo() *Repo {
	r := NewRepo()

	trunk := r.Add(Commit{
		ChangeID:    "qpvuntsm",
		Description: "Initial project layout",
		Files:       map[string]string{"go.mod": "module example.com/fetch\n"},
	})

	retry := map[string]string{"client/retry.go": "package client\n\nconst maxAttempts = 3\n"}
	r.Add(Commit{
		ChangeID:    "kxqpzlmw",
		Description: "Add retry to fetch client",
		Parents:     []jj.CommitID{trunk},
		Files:       retry,
	})
	left := r.Add(Commit{
		ChangeID:    "kxqpzlmw",
		Description: "Add retry to fetch client",
		Parents:     []jj.CommitID{trunk},
		Files:       retry,
	})
	r.Add(Commit{
		ChangeID:    "nzyrtkvs",
		Description: "Wire retry into sync",
		Parents:     []jj.CommitID{left},
		Files:       map[string]string{"sync/sync.go": "package sync\n\nvar useRetry = true\n"},
	})

	r.Add(Commit{
		ChangeID:    "wlsmrkto",
		Description: "Document config flags",
		Parents:     []jj.CommitID{trunk},
		Files:       map[string]string{"README.md": "# fetch\n\n--timeout sets the request timeout\n"},
	})
	r.Add(Commit{
		ChangeID:    "wlsmrkto",
		Description: "Document config flags\n\nAlso covers --retries.",
		Parents:     []jj.CommitID{trunk},
		Files:       map[string]string{"README.md": "# fetch\n\n--timeout sets the request timeout\n--retries sets the attempt count\n"},
	})

	return r
}
