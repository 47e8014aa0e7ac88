package intel

// Classify menentukan status match dan eliminasi dari jurusan + jabatan.
// Teks kosong atau tidak dikenal turun ke Unmatch, bukan eliminasi.
func Classify(rs *Ruleset, major, role string) Classification {
	majorNorm := normalize(major)
	roleNorm := normalize(role)

	isITEducation := containsAny(majorNorm, rs.ITEducationKeywords)
	isITJob := containsAny(roleNorm, rs.ITJobKeywords)

	match := MatchStatusUnmatch
	if isITEducation && isITJob {
		match = MatchStatusMatch
	}

	// Jurusan IT yang dilindungi tidak pernah tereliminasi, meskipun
	// mengandung substring dari daftar non-IT
	eliminated := false
	if !containsAny(majorNorm, rs.ProtectedITMajors) {
		eliminated = containsAny(majorNorm, rs.NonITMajors)
	}

	return Classification{
		IsITEducation: isITEducation,
		IsITJob:       isITJob,
		Match:         match,
		Eliminated:    eliminated,
	}
}
