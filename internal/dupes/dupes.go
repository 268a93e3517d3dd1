// Package dupes groups candidate files into clusters of byte-identical
// content and selects which member of each cluster survives in place.
package dupes

import (
	"context"
	"log/slog"
	"sort"

	"organizer/internal/hasher"
	"organizer/internal/logging"
	"organizer/internal/scan"
)

// Cluster is a group of files sharing identical size and digest. Members are
// ordered oldest first; the first member is the survivor and is never moved.
type Cluster struct {
	Size    int64
	Digest  uint64
	Members []*scan.File
}

// Survivor returns the member kept in place.
func (c Cluster) Survivor() *scan.File {
	return c.Members[0]
}

// Duplicates returns the members scheduled for relocation.
func (c Cluster) Duplicates() []*scan.File {
	return c.Members[1:]
}

// HashFunc computes a content digest for the file at path.
type HashFunc func(path string) (uint64, error)

// Detector runs the two-phase duplicate filter: partition by size, then by
// content digest.
type Detector struct {
	logger *slog.Logger
	sum    HashFunc
}

// New constructs a detector using the default content hasher.
func New(logger *slog.Logger) *Detector {
	return NewWithHashFunc(logger, hasher.SumFile)
}

// NewWithHashFunc allows injecting the hash function (used in tests).
func NewWithHashFunc(logger *slog.Logger, sum HashFunc) *Detector {
	return &Detector{logger: logging.NewComponentLogger(logger, "dupes"), sum: sum}
}

// Find partitions files into duplicate clusters. Zero-length files and files
// whose size cannot be determined never participate; files that fail hashing
// are dropped from the run rather than guessed at. A file that cannot be
// verified is never moved.
//
// Within each cluster members sort by modification time ascending; an
// unreadable timestamp sorts as the zero time, and equal timestamps keep
// enumeration order, so the survivor is chosen deterministically. Clusters
// are returned in the order their first member was enumerated.
func (d *Detector) Find(ctx context.Context, files []*scan.File) []Cluster {
	logger := logging.WithContext(ctx, d.logger)

	bySize := make(map[int64][]*scan.File)
	var sizes []int64
	for _, f := range files {
		size, ok := f.Size()
		if !ok {
			logger.Debug("excluding unreadable file", logging.String("file", f.Path))
			continue
		}
		if size == 0 {
			continue
		}
		if _, seen := bySize[size]; !seen {
			sizes = append(sizes, size)
		}
		bySize[size] = append(bySize[size], f)
	}

	byDigest := make(map[uint64][]*scan.File)
	var digests []uint64
	for _, size := range sizes {
		group := bySize[size]
		if len(group) < 2 {
			continue
		}
		for _, f := range group {
			digest, err := d.sum(f.Path)
			if err != nil {
				logger.Warn("hash failed, skipping file",
					logging.String("file", f.Path), logging.Error(err))
				continue
			}
			if _, seen := byDigest[digest]; !seen {
				digests = append(digests, digest)
			}
			byDigest[digest] = append(byDigest[digest], f)
		}
	}

	var clusters []Cluster
	for _, digest := range digests {
		members := byDigest[digest]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			ti, _ := members[i].ModTime()
			tj, _ := members[j].ModTime()
			return ti.Before(tj)
		})
		size, _ := members[0].Size()
		cluster := Cluster{Size: size, Digest: digest, Members: members}
		logger.Info("keeping original",
			logging.String("file", cluster.Survivor().Path),
			logging.Int("duplicates", len(cluster.Duplicates())))
		clusters = append(clusters, cluster)
	}
	return clusters
}

// Duplicates flattens the non-survivor members of every cluster, preserving
// cluster-then-sort order.
func Duplicates(clusters []Cluster) []*scan.File {
	var out []*scan.File
	for _, c := range clusters {
		out = append(out, c.Duplicates()...)
	}
	return out
}
