package localhub

import "time"

// RepoKind selects the on-disk prefix under which a repository lives. Models
// sit directly under the root, datasets under a "datasets" subdirectory.
type RepoKind string

const (
	RepoKindModel   RepoKind = "models"
	RepoKindDataset RepoKind = "datasets"
)

// Prefix returns the path component inserted between the storage root and the
// repository id, or "" for kinds stored at the root.
func (k RepoKind) Prefix() string {
	if k == RepoKindDataset {
		return "datasets"
	}
	return ""
}

// SidecarName is the per-repository metadata document. It is never listed,
// never resolvable, and is the only source of oid/lfs identity.
const SidecarName = ".paths-info.json"

// LFSInfo carries large-file-storage pointer metadata as recorded in the
// sidecar: a content hash of the form "sha256:<hex>" (the prefix is stripped
// before it is used as an ETag) and the declared size.
type LFSInfo struct {
	OID  string `json:"oid"`
	Size int64  `json:"size"`
}

// SidecarEntry is one record of the sidecar document, keyed by the file's
// path relative to the repository base.
type SidecarEntry struct {
	Size int64    `json:"size"`
	OID  string   `json:"oid"`
	LFS  *LFSInfo `json:"lfs,omitempty"`
}

// Sidecar is the parsed sidecar document. Callers must treat it as
// immutable; the same map is shared across requests.
type Sidecar map[string]SidecarEntry

// FileFact is the per-file record returned by the paths-info endpoint. Size
// comes from disk; oid and lfs appear only when the sidecar supplies them.
type FileFact struct {
	Path string   `json:"path"`
	Size int64    `json:"size"`
	OID  string   `json:"oid,omitempty"`
	LFS  *LFSInfo `json:"lfs,omitempty"`
	Type string   `json:"type"`
}

// DirFact is emitted by paths-info for a directory target when expansion is
// not requested.
type DirFact struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// TreeFile is a file entry of the tree endpoint. OID and LFS are filled only
// when the caller asked for expansion.
type TreeFile struct {
	Type string   `json:"type"`
	Path string   `json:"path"`
	Size int64    `json:"size"`
	OID  string   `json:"oid,omitempty"`
	LFS  *LFSInfo `json:"lfs,omitempty"`
}

// TreeDirectory is a directory entry of the tree endpoint. Directories have
// no object id; the field is serialized as an explicit null.
type TreeDirectory struct {
	Type string  `json:"type"`
	Path string  `json:"path"`
	OID  *string `json:"oid"`
}

// Sibling names one file of a repository, relative to the repository base.
type Sibling struct {
	RFilename string `json:"rfilename"`
}

// RepoInfo is the canonical repository document served by the repo-info
// endpoint. Exactly one of ModelID/DatasetID is set, matching the kind.
type RepoInfo struct {
	ID           string    `json:"id"`
	ModelID      string    `json:"modelId,omitempty"`
	DatasetID    string    `json:"datasetId,omitempty"`
	SHA          string    `json:"sha"`
	LastModified time.Time `json:"lastModified"`
	Private      bool      `json:"private"`
	Disabled     bool      `json:"disabled"`
	Gated        bool      `json:"gated"`
	Siblings     []Sibling `json:"siblings"`
	UsedStorage  int64     `json:"usedStorage"`
}
