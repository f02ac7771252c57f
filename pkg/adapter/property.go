package adapter

import (
	"context"
	"fmt"
	"iter"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/query"
)

// Property resolves one scalar per input vertex, 1:1 and order-preserving.
//
// The dispatch below must cover every (type, property) pair the schema
// declares; an unknown pair is a schema mismatch and is reported before any
// vertex is consumed. Missing optional data (no license, no withdrawal date)
// resolves to a null scalar, never an error.
func (a *Adapter) Property(ctx context.Context, vertices iter.Seq[Vertex], typeName, property string) (iter.Seq2[Vertex, query.Value], error) {
	resolve, err := propertyResolver(typeName, property)
	if err != nil {
		return nil, err
	}
	return func(yield func(Vertex, query.Value) bool) {
		for v := range vertices {
			if !yield(v, resolve(v)) {
				return
			}
		}
	}, nil
}

// propertyResolver returns the resolver for one (type, property) pair. The
// resolvers assume the engine only hands them vertices of the stated type; a
// mismatched vertex is an internal invariant violation and panics.
func propertyResolver(typeName, property string) (func(Vertex) query.Value, error) {
	switch typeName + "." + property {
	case "Package.id":
		return func(v Vertex) query.Value { return string(mustPackage(v).ID) }, nil
	case "Package.name":
		return func(v Vertex) query.Value { return mustPackage(v).Name }, nil
	case "Package.version":
		return func(v Vertex) query.Value { return mustPackage(v).Version }, nil
	case "Package.license":
		return func(v Vertex) query.Value { return nullableString(mustPackage(v).License) }, nil

	case "Repository.url", "GitHubRepository.url":
		return func(v Vertex) query.Value {
			url, ok := v.webpage()
			if !ok {
				panic(fmt.Sprintf("adapter: %s vertex is not a repository", v.Kind()))
			}
			return url
		}, nil

	case "GitHubRepository.name":
		return func(v Vertex) query.Value { return mustGitHubRepository(v).Name }, nil
	case "GitHubRepository.stars":
		return func(v Vertex) query.Value { return int64(mustGitHubRepository(v).Stars) }, nil
	case "GitHubRepository.forks":
		return func(v Vertex) query.Value { return int64(mustGitHubRepository(v).Forks) }, nil
	case "GitHubRepository.openIssues":
		return func(v Vertex) query.Value { return int64(mustGitHubRepository(v).OpenIssues) }, nil
	case "GitHubRepository.hasIssues":
		return func(v Vertex) query.Value { return mustGitHubRepository(v).HasIssues }, nil
	case "GitHubRepository.archived":
		return func(v Vertex) query.Value { return mustGitHubRepository(v).Archived }, nil
	case "GitHubRepository.fork":
		return func(v Vertex) query.Value { return mustGitHubRepository(v).Fork }, nil

	case "GitHubUser.username":
		return func(v Vertex) query.Value { return mustGitHubUser(v).Login }, nil
	case "GitHubUser.createdAt":
		return func(v Vertex) query.Value { return mustGitHubUser(v).CreatedAt }, nil
	case "GitHubUser.followers":
		return func(v Vertex) query.Value { return int64(mustGitHubUser(v).Followers) }, nil
	case "GitHubUser.email":
		return func(v Vertex) query.Value { return nullableString(mustGitHubUser(v).Email) }, nil

	case "Advisory.id":
		return func(v Vertex) query.Value { return mustAdvisory(v).ID }, nil
	case "Advisory.title":
		return func(v Vertex) query.Value { return mustAdvisory(v).Title }, nil
	case "Advisory.description":
		return func(v Vertex) query.Value { return mustAdvisory(v).Description }, nil
	case "Advisory.disclosureDate":
		// Date-only in the source data, pinned to midnight UTC.
		return func(v Vertex) query.Value { return mustAdvisory(v).Date }, nil
	case "Advisory.withdrawalDate":
		return func(v Vertex) query.Value {
			adv := mustAdvisory(v)
			if !adv.IsWithdrawn() {
				return nil
			}
			return adv.Withdrawn
		}, nil
	case "Advisory.affectedArch":
		return func(v Vertex) query.Value {
			adv := mustAdvisory(v)
			if adv.Affected == nil {
				return nil
			}
			out := make([]string, len(adv.Affected.Arch))
			for i, arch := range adv.Affected.Arch {
				out[i] = string(arch)
			}
			return out
		}, nil
	case "Advisory.affectedOs":
		return func(v Vertex) query.Value {
			adv := mustAdvisory(v)
			if adv.Affected == nil {
				return nil
			}
			out := make([]string, len(adv.Affected.OS))
			for i, os := range adv.Affected.OS {
				out[i] = string(os)
			}
			return out
		}, nil
	case "Advisory.patchedVersions":
		return func(v Vertex) query.Value { return mustAdvisory(v).Versions.Patched }, nil
	case "Advisory.unaffectedVersions":
		return func(v Vertex) query.Value { return mustAdvisory(v).Versions.Unaffected }, nil
	case "Advisory.severity":
		return func(v Vertex) query.Value {
			adv := mustAdvisory(v)
			if adv.Severity == advisory.SeverityNone {
				return nil
			}
			return adv.Severity.String()
		}, nil

	case "AffectedFunctionVersions.functionPath":
		return func(v Vertex) query.Value { return mustAffectedFunction(v).Path }, nil
	case "AffectedFunctionVersions.versions":
		return func(v Vertex) query.Value { return mustAffectedFunction(v).Versions }, nil

	case "GeigerUnsafety.forbidsUnsafe":
		return func(v Vertex) query.Value { return mustUnsafety(v).ForbidsUnsafe }, nil

	case "GeigerCount.safe":
		return func(v Vertex) query.Value { return int64(mustCount(v).Safe) }, nil
	case "GeigerCount.unsafe":
		return func(v Vertex) query.Value { return int64(mustCount(v).Unsafe) }, nil
	case "GeigerCount.total":
		return func(v Vertex) query.Value { return int64(mustCount(v).Total()) }, nil
	case "GeigerCount.percentageUnsafe":
		return func(v Vertex) query.Value { return mustCount(v).PercentageUnsafe() }, nil

	default:
		return nil, fmt.Errorf("unknown property %s.%s", typeName, property)
	}
}

func nullableString(s string) query.Value {
	if s == "" {
		return nil
	}
	return s
}
