package analysis

import "math/rand"

// Demo content shown when the remote service cannot be reached. The pipeline
// never surfaces a hard failure for a single file; it substitutes one of
// these fixed notes and transcriptions instead, clearly flagged as demo data.

// DemoClinicalNotes is the fixed pool of fallback clinical notes
var DemoClinicalNotes = []string{
	"CLINICAL NOTE\n\nChief Complaint: Patient presents with chest pain and shortness of breath.\n\nHistory of Present Illness: 45-year-old male reports onset of chest pain 2 hours ago, described as sharp and radiating to left arm. Associated with mild dyspnea and diaphoresis.\n\nAssessment: Possible acute coronary syndrome. EKG shows ST elevation in leads II, III, aVF.\n\nPlan:\n- Immediate cardiology consultation\n- Serial cardiac enzymes\n- Continuous cardiac monitoring\n- Aspirin 325mg administered",

	"CLINICAL NOTE\n\nChief Complaint: Follow-up for diabetes management.\n\nHistory: 62-year-old female with Type 2 diabetes mellitus, last HbA1c 8.2%. Reports good medication compliance but difficulty with dietary restrictions.\n\nPhysical Exam: Vital signs stable. No acute distress. Feet examination shows no signs of neuropathy or ulceration.\n\nAssessment: Suboptimal glycemic control.\n\nPlan:\n- Increase metformin to 1000mg BID\n- Referral to nutritionist\n- Follow-up in 3 months with repeat HbA1c",

	"CLINICAL NOTE\n\nChief Complaint: Annual physical examination.\n\nHistory: 35-year-old healthy female for routine check-up. No current complaints. Family history significant for hypertension and breast cancer.\n\nPhysical Exam: Normal vital signs. Physical examination unremarkable.\n\nAssessment: Healthy adult female.\n\nPlan:\n- Continue current lifestyle\n- Mammogram screening due to family history\n- Routine labs including lipid panel\n- Return in 1 year for follow-up",
}

// DemoTranscriptions is the fixed pool of fallback transcriptions
var DemoTranscriptions = []string{
	"Doctor: Good morning, how are you feeling today? Patient: I've been having this chest pain since this morning, it's really sharp and goes down my left arm. Doctor: When did this start exactly? Patient: About two hours ago, I was just sitting at my desk and it came on suddenly. Doctor: Are you having any trouble breathing? Patient: Yes, a little bit, and I'm sweating more than usual.",

	"Doctor: How has your blood sugar been since our last visit? Patient: Well, I've been checking it like you said, but it's still running pretty high, usually around 180 in the mornings. Doctor: Are you taking your metformin regularly? Patient: Yes, every day with breakfast. But I have to admit, I've been struggling with the diet changes. Doctor: That's understandable, dietary changes can be challenging.",

	"Doctor: This is your annual check-up, any concerns or questions? Patient: Not really, I feel pretty good overall. Just wanted to make sure everything looks normal. Doctor: That's great to hear. Any family history I should know about? Patient: My mom had breast cancer when she was 50, and my dad has high blood pressure. Doctor: Okay, we'll keep that in mind for screening recommendations.",
}

// DemoClinicalNote picks a fallback clinical note uniformly from the pool
func DemoClinicalNote(rng *rand.Rand) string {
	return DemoClinicalNotes[rng.Intn(len(DemoClinicalNotes))]
}

// DemoTranscription picks a fallback transcription uniformly from the pool
func DemoTranscription(rng *rand.Rand) string {
	return DemoTranscriptions[rng.Intn(len(DemoTranscriptions))]
}
