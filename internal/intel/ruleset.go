package intel

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ruleset berisi tabel keyword klasifikasi. Satu sumber untuk seluruh sistem;
// bisa dioverride lewat file YAML (CLASSIFIER_RULES_PATH) tanpa rebuild.
type Ruleset struct {
	ITEducationKeywords []string `yaml:"it_education_keywords"`
	ITJobKeywords       []string `yaml:"it_job_keywords"`
	NonITMajors         []string `yaml:"non_it_majors"`
	// ProtectedITMajors dicek SEBELUM NonITMajors: "teknik informatika" tidak
	// boleh tereliminasi hanya karena mengandung "teknik".
	ProtectedITMajors []string `yaml:"protected_it_majors"`
}

// LoadRuleset membaca ruleset dari file YAML. Path kosong memakai default.
func LoadRuleset(path string) (*Ruleset, error) {
	if path == "" {
		return DefaultRuleset(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier rules: %w", err)
	}

	var rs Ruleset
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("parse classifier rules: %w", err)
	}

	// File parsial tetap valid: list kosong jatuh ke default
	def := DefaultRuleset()
	if len(rs.ITEducationKeywords) == 0 {
		rs.ITEducationKeywords = def.ITEducationKeywords
	}
	if len(rs.ITJobKeywords) == 0 {
		rs.ITJobKeywords = def.ITJobKeywords
	}
	if len(rs.NonITMajors) == 0 {
		rs.NonITMajors = def.NonITMajors
	}
	if len(rs.ProtectedITMajors) == 0 {
		rs.ProtectedITMajors = def.ProtectedITMajors
	}

	return &rs, nil
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultRuleset mengembalikan tabel keyword bawaan.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		ITEducationKeywords: []string{
			"information technology", "teknik informatika", "ilmu komputer", "sistem informasi",
			"computer science", "software engineering", "informatika", "teknik komputer",
			"komputer", "teknologi informasi", "information system", "informatics engineering",
			"informatic engineering", "computer engineering", "information management",
			"informatics management", "management informatika", "sistem komputer",
			"komputerisasi akuntanasi", "computerized accounting", "computational science",
			"informatics", "informatics technology", "computer and informatics engineering",
			"engineering informatic", "industrial engineering_informatic",
			"statistics", "technology management", "electrical engineering", "electronics engineering",
			"master in informatics", "ict", "computer science & electronics", "computer telecommunication",
			"telecommunication engineering", "telecommunications engineering", "telecommunication & media",
			"teknik elektro", "computer scince", "computer sciences & engineering", "computer system",
			"computer sience", "computer technology", "informastion system",
			"informatics technique", "informatiocs", "teknik komputer & jaringan",
			"information engineering", "software engineering technology", "digital media technology",
			"informatic engineeting", "information sytem", "materials engineering",
			"network management", "informatics system", "business information system", "physics engineering",
			"management information system", "telecomunication engineering",
		},
		ITJobKeywords: []string{
			"developer", "programmer", "software", "technical", "frontend", "backend",
			"fullstack", "full stack", "java", "net", ".net", "api", "etl", "mobile",
			"android", "web", "ui/ux", "front end", "back end", "pega", "rpa",
			"analyst", "business analyst", "system analyst", "data analyst", "data scientist",
			"quality assurance", "qa", "tester", "test engineer", "consultant",
			"it consultant", "technology consultant", "technical consultant",
			"product owner", "scrum master", "pmo", "it operation", "devops",
			"system administrator", "database administrator", "network",
			"it quality assurance", "testing engineer", "tester support", "jr tester",
			"it tester", "testing specialist", "testing coordinator", "quality tester",
			"jr quality assurance", "quality assurance tester", "testing engineer specialist",
			"apprentice tester", "jr tester level 1", "lead qa", "lead backend developer",
			"project manager", "it project manager", "technical project manager", "assistant project manager",
			"bi developer", "bi cognos developer", "power bi developer", "sr. bi developer",
			"data modeler", "database report engineer", "report designer",
			"middleware developer", "datastage developer", "etl datastage developer", "ibm datastage",
			"odoo developer", "sr. odoo developer", "talend consultant", "mft consultant",
			"cyber security operation", "it security operations", "security engineer", "senior security engineer",
			"cyber security policy", "it infra & security officer", "infrastructure",
			"lead frontend developer", "sr. technology consultant",
			"graduate development program", "junior consultant", "jr. consultant", "jr consultant",
			"technical lead", "tech lead", "solution analyst", "data engineer",
			"it support", "system support", "production support", "helpdesk",
			"sr. etl developer", "jr. etl consultant",
			"technical research & development consultant", "presales", "it trainer",
			"technical trainer", "assistant trainer", "java trainer",
			"mobile developer", "android developer", "ios developer", "front end mobile developer",
			"web front end developer", "fronetend developer", "front end developer",
			"sr .net developer", "jr .net developer", ".net developer", "sr. .net developer",
			"full stack developer", "fullstack developer", "ui/ux developer",
			"rpa developer", "rpa trainee", "pega developer", "sr. pega developer",
		},
		NonITMajors: []string{
			"kedokteran", "farmasi", "hukum", "akuntansi", "manajemen", "ekonomi",
			"psikologi", "bahasa", "sastra", "pendidikan", "sejarah", "geografi",
			"biologi", "kimia", "fisika", "matematika", "pertanian", "kehutanan",
			"perikanan", "kedokteran hewan", "arsitektur", "sipil", "mesin",
			"elektro", "industri", "teknik", "seni", "desain", "komunikasi",
			"jurnalistik", "sosiologi", "antropologi", "ilmu politik",
			"hubungan internasional", "administrasi", "keperawatan", "kebidanan",
			"gizi", "kesehatan masyarakat", "olahraga", "keolahragaan",
		},
		ProtectedITMajors: []string{
			"teknik informatika", "teknik komputer", "teknik elektro", "teknik industri",
			"information technology", "information system", "computer science",
			"informatics", "informatics engineering", "computer engineering",
			"software engineering", "system information", "management informatika",
			"manajemen informatika",
		},
	}
}
