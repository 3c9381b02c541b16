package timelog

// Normalize folds the legacy scalar activity reference into ActivityIDs so
// every session exposes the list shape. Idempotent.
func (s *Session) Normalize() {
	if len(s.ActivityIDs) == 0 && s.ActivityID != "" {
		s.ActivityIDs = []string{s.ActivityID}
	}
}

// PrimaryActivity returns the session's primary activity id: the first entry
// of ActivityIDs, falling back to the legacy scalar. Empty means the record
// is orphaned and must be excluded from aggregation.
func (s Session) PrimaryActivity() string {
	if len(s.ActivityIDs) > 0 {
		return s.ActivityIDs[0]
	}
	return s.ActivityID
}

// refs returns all activity ids the session counts toward, covering both
// record shapes without requiring a prior Normalize call.
func (s Session) refs() []string {
	if len(s.ActivityIDs) > 0 {
		return s.ActivityIDs
	}
	if s.ActivityID != "" {
		return []string{s.ActivityID}
	}
	return nil
}

// Matches reports whether the session counts toward any of the given
// activity ids. A session matching through several ids still matches once.
func (s Session) Matches(ids map[string]bool) bool {
	for _, id := range s.refs() {
		if ids[id] {
			return true
		}
	}
	return false
}

// IDSet builds a membership set from a list of activity ids.
func IDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// FilterByActivities returns the sessions counting toward any of the given
// activity ids. A nil or empty id list matches nothing.
func FilterByActivities(sessions []Session, activityIDs []string) []Session {
	if len(activityIDs) == 0 {
		return nil
	}
	set := IDSet(activityIDs)
	var matched []Session
	for _, s := range sessions {
		if s.Matches(set) {
			matched = append(matched, s)
		}
	}
	return matched
}

// FilterValid excludes orphaned sessions: records with no activity reference
// at all, or referencing only activities that no longer exist. The exclusion
// count is returned alongside the surviving records so callers can surface
// it rather than silently folding orphans into totals.
func FilterValid(sessions []Session, activities []Activity) (valid []Session, orphans int) {
	known := make(map[string]bool, len(activities))
	for _, a := range activities {
		known[a.ID] = true
	}

	for _, s := range sessions {
		if s.Matches(known) {
			valid = append(valid, s)
		} else {
			orphans++
		}
	}
	return valid, orphans
}
