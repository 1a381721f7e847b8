package v1alpha1

import (
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer"
)

// Request field readers. Struct numbers are doubles, so integer fields are
// checked for integrality.

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func boolField(req *structpb.Struct, name string) bool {
	return req.GetFields()[name].GetBoolValue()
}

func intField(req *structpb.Struct, name string) (int, bool, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, true, errors.InvalidArgumentf("%s must be a number", name).WithMeta("fields", name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, true, errors.InvalidArgumentf("%s must be an integer", name).WithMeta("fields", name)
	}
	return int(n.NumberValue), true, nil
}

func stringListField(req *structpb.Struct, name string) ([]string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, errors.InvalidArgumentf("%s must be a list of strings", name).WithMeta("fields", name)
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		s, isString := item.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return nil, errors.InvalidArgumentf("%s must be a list of strings", name).WithMeta("fields", name)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

// Response builders produce plain maps that structpb.NewStruct accepts

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func timestamp(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func recordMap(r *pokedex.CatalogRecord, displayImage string) map[string]interface{} {
	stats := make([]interface{}, len(r.Stats))
	for i, st := range r.Stats {
		stats[i] = map[string]interface{}{
			"name":  st.Name,
			"value": st.Value,
		}
	}

	m := map[string]interface{}{
		"id":            r.ID,
		"name":          r.Name,
		"static_image":  r.StaticImage,
		"display_image": displayImage,
		"types":         stringList(r.Types),
		"height":        r.Height,
		"weight":        r.Weight,
		"stats":         stats,
		"abilities":     stringList(r.Abilities),
		"description":   r.Description,
	}
	if r.AnimatedImage != nil {
		m["animated_image"] = *r.AnimatedImage
	}
	if r.EvolutionChain != nil {
		m["evolution_chain"] = *r.EvolutionChain
	}
	return m
}

func entryList(entries []catalog.ListEntry) []interface{} {
	out := make([]interface{}, len(entries))
	for i, e := range entries {
		out[i] = recordMap(e.Record, e.DisplayImage)
	}
	return out
}

func filterMap(f pokedex.FilterState) map[string]interface{} {
	return map[string]interface{}{
		"search_term":    f.SearchTerm,
		"selected_types": stringList(f.SelectedTypes),
	}
}

func loadStatusMap(st catalog.LoadStatus) map[string]interface{} {
	return map[string]interface{}{
		"run_id":      st.RunID,
		"state":       string(st.State),
		"loaded":      st.Loaded,
		"total":       st.Total,
		"batches":     st.Batches,
		"last_error":  st.LastError,
		"started_at":  timestamp(st.StartedAt),
		"finished_at": timestamp(st.FinishedAt),
	}
}

func chainMap(out *catalog.GetEvolutionChainOutput) map[string]interface{} {
	stages := make([]interface{}, len(out.Stages))
	for i, stage := range out.Stages {
		entries := make([]interface{}, len(stage))
		for j, e := range stage {
			entry := map[string]interface{}{
				"species_name":  e.SpeciesName,
				"trigger_label": e.TriggerLabel,
				"placeholder":   e.Record == nil,
				"display_image": e.DisplayImage,
			}
			if e.Record != nil {
				entry["record"] = recordMap(e.Record, e.DisplayImage)
			}
			entries[j] = entry
		}
		stages[i] = map[string]interface{}{"entries": entries}
	}
	return map[string]interface{}{
		"chain_ref": out.ChainRef,
		"cache_hit": out.CacheHit,
		"stages":    stages,
	}
}

func sessionViewMap(v *viewer.SessionView) map[string]interface{} {
	sess := v.Session
	return map[string]interface{}{
		"session": map[string]interface{}{
			"id":         sess.ID,
			"filter":     filterMap(sess.Filter),
			"animated":   sess.Animated,
			"created_at": timestamp(sess.CreatedAt),
			"updated_at": timestamp(sess.UpdatedAt),
			"expires_at": timestamp(sess.ExpiresAt),
		},
		"summary": map[string]interface{}{
			"label":     v.Summary.Label,
			"dual_type": v.Summary.DualType,
		},
		"records":          entryList(v.Entries),
		"total":            v.Total,
		"loading":          v.Loading,
		"capacity_warning": v.CapacityWarning,
	}
}
