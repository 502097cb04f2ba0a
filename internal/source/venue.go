// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"regexp"
	"strings"
)

// venueEntry maps a common venue abbreviation to its full name. The
// table is an ordered slice, not a map: partial matching walks it in
// order and the first whole-word hit wins.
type venueEntry struct {
	abbrev string
	full   string
}

var venueTable = []venueEntry{
	// AI and machine learning
	{"AAAI", "Proceedings of the AAAI Conference on Artificial Intelligence"},
	{"ICML", "International Conference on Machine Learning"},
	{"NeurIPS", "Advances in Neural Information Processing Systems"},
	{"NIPS", "Advances in Neural Information Processing Systems"},
	{"ICLR", "International Conference on Learning Representations"},
	{"AISTATS", "Artificial Intelligence and Statistics"},
	{"UAI", "Uncertainty in Artificial Intelligence"},
	{"IJCAI", "International Joint Conference on Artificial Intelligence"},
	{"KR", "Knowledge Representation and Reasoning"},
	{"COLT", "Conference on Learning Theory"},
	{"ALT", "Algorithmic Learning Theory"},

	// Computer vision
	{"ICCV", "International Conference on Computer Vision"},
	{"CVPR", "IEEE/CVF Conference on Computer Vision and Pattern Recognition"},
	{"ECCV", "European Conference on Computer Vision"},
	{"BMVC", "British Machine Vision Conference"},
	{"WACV", "Winter Conference on Applications of Computer Vision"},

	// Natural language processing
	{"ACL", "Proceedings of the Annual Meeting of the Association for Computational Linguistics"},
	{"EMNLP", "Proceedings of the Conference on Empirical Methods in Natural Language Processing"},
	{"NAACL", "Proceedings of the North American Chapter of the Association for Computational Linguistics"},
	{"EACL", "Proceedings of the European Chapter of the Association for Computational Linguistics"},
	{"COLING", "International Conference on Computational Linguistics"},
	{"CoNLL", "Conference on Natural Language Learning"},
	{"LREC", "Language Resources and Evaluation Conference"},
	{"INLG", "International Conference on Natural Language Generation"},

	// Information retrieval and data mining
	{"SIGIR", "Proceedings of the International ACM SIGIR Conference on Research and Development in Information Retrieval"},
	{"KDD", "Proceedings of the ACM SIGKDD International Conference on Knowledge Discovery and Data Mining"},
	{"WSDM", "Web Search and Data Mining"},
	{"WWW", "The Web Conference"},
	{"CIKM", "Conference on Information and Knowledge Management"},
	{"RecSys", "ACM Conference on Recommender Systems"},
	{"ICTIR", "International Conference on the Theory of Information Retrieval"},

	// Software engineering
	{"ICSE", "International Conference on Software Engineering"},
	{"FSE", "ACM SIGSOFT International Symposium on Foundations of Software Engineering"},
	{"ASE", "International Conference on Automated Software Engineering"},
	{"ISSTA", "International Symposium on Software Testing and Analysis"},
	{"ICST", "International Conference on Software Testing, Verification and Validation"},
	{"ICSME", "International Conference on Software Maintenance and Evolution"},
	{"MSR", "Mining Software Repositories"},
	{"SANER", "Software Analysis, Evolution and Reengineering"},
	{"ICSOC", "International Conference on Service-Oriented Computing"},
	{"WICSA", "Working IEEE/IFIP Conference on Software Architecture"},
	{"SE", "Software Engineering"},

	// Programming languages and compilers
	{"OOPSLA", "Object-Oriented Programming, Systems, Languages & Applications"},
	{"PLDI", "Programming Language Design and Implementation"},
	{"POPL", "Symposium on Principles of Programming Languages"},
	{"ICFP", "International Conference on Functional Programming"},
	{"ESOP", "European Symposium on Programming"},
	{"CC", "International Conference on Compiler Construction"},
	{"SAS", "Static Analysis Symposium"},
	{"VMCAI", "Verification, Model Checking, and Abstract Interpretation"},
	{"ECOOP", "European Conference on Object-Oriented Programming"},

	// Systems
	{"SIGCOMM", "ACM SIGCOMM Conference"},
	{"INFOCOM", "IEEE Conference on Computer Communications"},
	{"NSDI", "Symposium on Networked Systems Design and Implementation"},
	{"OSDI", "Operating Systems Design and Implementation"},
	{"SOSP", "Symposium on Operating Systems Principles"},
	{"EuroSys", "European Conference on Computer Systems"},
	{"ASPLOS", "Architectural Support for Programming Languages and Operating Systems"},
	{"MICRO", "IEEE/ACM International Symposium on Microarchitecture"},
	{"HPCA", "IEEE International Symposium on High-Performance Computer Architecture"},
	{"ISCA", "International Symposium on Computer Architecture"},
	{"SoCC", "ACM Symposium on Cloud Computing"},
	{"HotOS", "Workshop on Hot Topics in Operating Systems"},
	{"HotNets", "Workshop on Hot Topics in Networks"},
	{"HotCloud", "Workshop on Hot Topics in Cloud Computing"},
	{"HotEdge", "Workshop on Hot Topics in Edge Computing"},
	{"HotStorage", "Workshop on Hot Topics in Storage and File Systems"},
	{"ATC", "USENIX Annual Technical Conference"},
	{"FAST", "File and Storage Technologies"},

	// Real-time and embedded systems
	{"RTSS", "IEEE Real-Time Systems Symposium"},
	{"RTAS", "IEEE Real-Time and Embedded Technology and Applications Symposium"},
	{"EMSOFT", "Embedded Software"},
	{"DAC", "Design Automation Conference"},
	{"DATE", "Design, Automation and Test in Europe"},
	{"CODES+ISSS", "Hardware/Software Codesign and System Synthesis"},
	{"ASP-DAC", "Asia and South Pacific Design Automation Conference"},
	{"ISSCC", "IEEE International Solid-State Circuits Conference"},

	// Mobile and wireless systems
	{"MobiSys", "International Conference on Mobile Systems, Applications, and Services"},
	{"MobiCom", "International Conference on Mobile Computing and Networking"},
	{"MobiHoc", "International Symposium on Mobile Ad Hoc Networking and Computing"},
	{"SenSys", "ACM Conference on Embedded Networked Sensor Systems"},
	{"IPSN", "International Conference on Information Processing in Sensor Networks"},
	{"UbiComp", "Ubiquitous Computing"},
	{"Pervasive", "International Conference on Pervasive Computing"},

	// Networking
	{"IMC", "Internet Measurement Conference"},
	{"CoNEXT", "Conference on emerging Networking Experiments and Technologies"},
	{"PAM", "Passive and Active Measurement"},
	{"ANCS", "Architectures for Networking and Communications Systems"},
	{"ICNP", "International Conference on Network Protocols"},
	{"ICC", "IEEE International Conference on Communications"},
	{"GLOBECOM", "IEEE Global Communications Conference"},

	// Distributed systems and parallel computing
	{"PODC", "Principles of Distributed Computing"},
	{"DISC", "International Symposium on Distributed Computing"},
	{"OPODIS", "International Conference on Principles of Distributed Systems"},
	{"SRDS", "Symposium on Reliable Distributed Systems"},
	{"HPDC", "International Symposium on High-Performance Parallel and Distributed Computing"},
	{"SC", "International Conference for High Performance Computing, Networking, Storage and Analysis"},
	{"PPoPP", "Principles and Practice of Parallel Programming"},
	{"ICPP", "International Conference on Parallel Processing"},
	{"IPDPS", "International Parallel & Distributed Processing Symposium"},
	{"CCGrid", "IEEE/ACM International Symposium on Cluster, Cloud and Grid Computing"},

	// Theory and algorithms
	{"STOC", "Symposium on Theory of Computing"},
	{"FOCS", "IEEE Symposium on Foundations of Computer Science"},
	{"SODA", "ACM-SIAM Symposium on Discrete Algorithms"},
	{"ICALP", "International Colloquium on Automata, Languages, and Programming"},
	{"ESA", "European Symposium on Algorithms"},
	{"SWAT", "Scandinavian Symposium and Workshops on Algorithm Theory"},
	{"WADS", "Algorithms and Data Structures Symposium"},
	{"IPCO", "Integer Programming and Combinatorial Optimization"},
	{"CP", "Principles and Practice of Constraint Programming"},
	{"SAT", "Theory and Applications of Satisfiability Testing"},

	// Formal methods and verification
	{"CAV", "International Conference on Computer Aided Verification"},
	{"TACAS", "Tools and Algorithms for the Construction and Analysis of Systems"},
	{"FM", "Formal Methods"},
	{"FMODS", "Formal Methods for Open Object-Based Distributed Systems"},
	{"IFM", "Integrated Formal Methods"},
	{"LICS", "Logic in Computer Science"},
	{"CSL", "Computer Science Logic"},
	{"MFCS", "Mathematical Foundations of Computer Science"},

	// Security
	{"CCS", "ACM Conference on Computer and Communications Security"},
	{"SP", "IEEE Symposium on Security and Privacy"},
	{"USENIX Security", "USENIX Security Symposium"},
	{"NDSS", "Network and Distributed System Security Symposium"},
	{"RAID", "International Symposium on Research in Attacks, Intrusions and Defenses"},
	{"ASIACCS", "ACM Asia Conference on Computer and Communications Security"},
	{"ESORICS", "European Symposium on Research in Computer Security"},
	{"EuroS&P", "IEEE European Symposium on Security and Privacy"},
	{"CSF", "IEEE Computer Security Foundations Symposium"},
	{"ACNS", "Applied Cryptography and Network Security"},
	{"PKC", "Public Key Cryptography"},
	{"Crypto", "International Cryptology Conference"},
	{"Eurocrypt", "European Cryptology Conference"},
	{"Asiacrypt", "International Conference on the Theory and Application of Cryptology and Information Security"},
	{"CHES", "Cryptographic Hardware and Embedded Systems"},

	// Dependability
	{"ISSRE", "IEEE International Symposium on Software Reliability Engineering"},
	{"DSN", "IEEE/IFIP International Conference on Dependable Systems and Networks"},
	{"DSN-W", "DSN Workshops"},
	{"DASC", "Dependable, Autonomic and Secure Computing"},
	{"PRDC", "Pacific Rim International Symposium on Dependable Computing"},

	// Human-computer interaction
	{"CHI", "ACM Conference on Human Factors in Computing Systems"},
	{"UIST", "ACM Symposium on User Interface Software and Technology"},
	{"CSCW", "Computer Supported Cooperative Work and Social Computing"},
	{"DIS", "Designing Interactive Systems"},
	{"HCI", "Human-Computer Interaction"},
	{"MobileHCI", "Mobile Human-Computer Interaction"},
	{"IUI", "Intelligent User Interfaces"},
	{"ITS", "Interactive Tabletops and Surfaces"},

	// Databases and storage
	{"VLDB", "Very Large Data Bases"},
	{"SIGMOD", "ACM SIGMOD International Conference on Management of Data"},
	{"ICDE", "IEEE International Conference on Data Engineering"},
	{"EDBT", "International Conference on Extending Database Technology"},
	{"ICDT", "International Conference on Database Theory"},
	{"PODS", "Principles of Database Systems"},
	{"CIDR", "Conference on Innovative Data Systems Research"},
	{"DaMoN", "Data Management on New Hardware"},
	{"DASFAA", "Database Systems for Advanced Applications"},
	{"WAIM", "Web-Age Information Management"},

	// Journals
	{"JMLR", "Journal of Machine Learning Research"},
	{"TPAMI", "IEEE Transactions on Pattern Analysis and Machine Intelligence"},
	{"TACL", "Transactions of the Association for Computational Linguistics"},
	{"TKDE", "IEEE Transactions on Knowledge and Data Engineering"},
	{"TOIS", "ACM Transactions on Information Systems"},
	{"TOS", "ACM Transactions on Storage"},
	{"TOCS", "ACM Transactions on Computer Systems"},
	{"TSE", "IEEE Transactions on Software Engineering"},
	{"TOSEM", "ACM Transactions on Software Engineering and Methodology"},
	{"TSC", "IEEE Transactions on Services Computing"},
	{"TC", "IEEE Transactions on Computers"},
	{"TPDS", "IEEE Transactions on Parallel and Distributed Systems"},
	{"TDSC", "IEEE Transactions on Dependable and Secure Computing"},
	{"TIFS", "IEEE Transactions on Information Forensics and Security"},
	{"TMC", "IEEE Transactions on Mobile Computing"},
	{"TNET", "IEEE/ACM Transactions on Networking"},
	{"TON", "IEEE/ACM Transactions on Networking"},
	{"TCC", "IEEE Transactions on Cloud Computing"},
	{"TSMC", "IEEE Transactions on Systems, Man, and Cybernetics"},
	{"TKDD", "ACM Transactions on Knowledge Discovery from Data"},
	{"TIST", "ACM Transactions on Intelligent Systems and Technology"},
	{"AIJ", "Artificial Intelligence Journal"},
	{"JAIR", "Journal of Artificial Intelligence Research"},
	{"JACM", "Journal of the ACM"},
	{"CACM", "Communications of the ACM"},
	{"ACM Computing Surveys", "ACM Computing Surveys"},
	{"CSUR", "ACM Computing Surveys"},
	{"VLDBJ", "VLDB Journal"},

	// Common registry abbreviations
	{"Proc. AAAI", "Proceedings of the AAAI Conference on Artificial Intelligence"},
	{"Proc. ICML", "International Conference on Machine Learning"},
	{"Proc. NeurIPS", "Advances in Neural Information Processing Systems"},
	{"Proc. NIPS", "Advances in Neural Information Processing Systems"},
	{"Proc. ICLR", "International Conference on Learning Representations"},
	{"Proc. CVPR", "IEEE/CVF Conference on Computer Vision and Pattern Recognition"},
	{"Proc. ICCV", "International Conference on Computer Vision"},
	{"Proc. ECCV", "European Conference on Computer Vision"},
	{"Proc. ACL", "Proceedings of the Annual Meeting of the Association for Computational Linguistics"},
	{"Proc. EMNLP", "Proceedings of the Conference on Empirical Methods in Natural Language Processing"},
	{"Proc. NAACL", "Proceedings of the North American Chapter of the Association for Computational Linguistics"},
	{"IEEE Trans.", "IEEE Transactions"},
	{"ACM Trans.", "ACM Transactions"},
	{"Proc.", "Proceedings"},
}

// ExpandVenue resolves a venue abbreviation to its full name. Exact
// matches win; otherwise the first abbreviation appearing as a whole
// word inside the venue string does. Unknown venues pass through
// unchanged.
func ExpandVenue(venue string) string {
	if venue == "" {
		return venue
	}

	for _, e := range venueTable {
		if venue == e.abbrev {
			return e.full
		}
	}

	venueUpper := strings.ToUpper(venue)
	for _, e := range venueTable {
		if !strings.Contains(venueUpper, strings.ToUpper(e.abbrev)) {
			continue
		}
		pattern := `(?i)\b` + regexp.QuoteMeta(e.abbrev) + `\b`
		if matched, _ := regexp.MatchString(pattern, venue); matched {
			return e.full
		}
	}

	return venue
}
