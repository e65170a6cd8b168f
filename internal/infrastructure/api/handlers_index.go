package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/config"
	domainservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type indexPageData struct {
	CharacterName string
	Prompt        string
	Steps         rangeControl
	Guidance      rangeControl
	Outputs       rangeControl
	Variants      []string
	Default       string
}

type rangeControl struct {
	Min, Max, Step, Value any
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func defaultIndexPageData() indexPageData {
	return indexPageData{
		CharacterName: domainservices.CharacterName,
		Prompt:        config.DefaultPrompt,
		Steps: rangeControl{
			Min: valueobjects.MinInferenceSteps, Max: valueobjects.MaxInferenceSteps,
			Step: 1, Value: valueobjects.DefaultInferenceSteps,
		},
		Guidance: rangeControl{
			Min: valueobjects.MinGuidanceScale, Max: valueobjects.MaxGuidanceScale,
			Step: 0.1, Value: valueobjects.DefaultGuidanceScale,
		},
		Outputs: rangeControl{
			Min: valueobjects.MinOutputs, Max: valueobjects.MaxOutputs,
			Step: 1, Value: valueobjects.DefaultOutputs,
		},
		Variants: []string{string(valueobjects.ModelDev), string(valueobjects.ModelSchnell)},
		Default:  string(valueobjects.DefaultModelVariant),
	}
}

func (h *GenerationHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, defaultIndexPageData()); err != nil {
		slog.Error("HandleIndex", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Write(buf.Bytes())
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>{{.CharacterName}}'s Image Generation App</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.loader{border:8px solid #f3f3f3;border-top:8px solid #6366f1;border-radius:50%;width:56px;height:56px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
.result-cell img{width:100%;height:auto;object-fit:contain}
</style>
</head>
<body class="bg-gray-50 text-gray-800">
<div class="container mx-auto p-4 md:p-8 max-w-5xl">
<header class="text-center mb-8">
<h1 class="text-3xl md:text-4xl font-bold text-gray-900">{{.CharacterName}}'s Image Generation App</h1>
<p class="text-gray-600 mt-2">This app will output AI Images created with {{.CharacterName}} in them</p>
</header>
<main class="bg-white p-6 md:p-8 rounded-2xl shadow-lg">
<form id="generate-form">
<label for="prompt" class="block text-lg font-semibold mb-2 text-gray-700">Enter your prompt:</label>
<input id="prompt" name="prompt" type="text" value="{{.Prompt}}" class="w-full border border-gray-300 rounded-lg p-3 mb-4 focus:outline-none focus:ring-2 focus:ring-indigo-500"/>

<button type="button" id="toggle-advanced" class="text-indigo-600 hover:text-indigo-800 text-sm font-medium mb-4">Advanced Settings</button>
<div id="advanced-settings" class="hidden grid grid-cols-1 md:grid-cols-2 gap-4 mb-6 p-4 bg-gray-50 rounded-lg">
<div>
<label for="num_inference_steps" class="block text-sm font-medium text-gray-700">Number of Inference Steps: <span data-value-for="num_inference_steps">{{.Steps.Value}}</span></label>
<input id="num_inference_steps" name="num_inference_steps" type="range" min="{{.Steps.Min}}" max="{{.Steps.Max}}" step="{{.Steps.Step}}" value="{{.Steps.Value}}" class="w-full"/>
</div>
<div>
<label for="guidance_scale" class="block text-sm font-medium text-gray-700">Guidance Scale: <span data-value-for="guidance_scale">{{.Guidance.Value}}</span></label>
<input id="guidance_scale" name="guidance_scale" type="range" min="{{.Guidance.Min}}" max="{{.Guidance.Max}}" step="{{.Guidance.Step}}" value="{{.Guidance.Value}}" class="w-full"/>
</div>
<div>
<label for="num_outputs" class="block text-sm font-medium text-gray-700">Number of Outputs: <span data-value-for="num_outputs">{{.Outputs.Value}}</span></label>
<input id="num_outputs" name="num_outputs" type="range" min="{{.Outputs.Min}}" max="{{.Outputs.Max}}" step="{{.Outputs.Step}}" value="{{.Outputs.Value}}" class="w-full"/>
</div>
<div>
<label for="model" class="block text-sm font-medium text-gray-700">Model</label>
<select id="model" name="model" class="w-full border border-gray-300 rounded-lg p-2">
{{- range .Variants}}
<option value="{{.}}"{{if eq . $.Default}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
</div>
</div>

<button type="submit" id="submit-btn" class="w-full md:w-auto px-6 py-3 bg-indigo-600 text-white rounded-lg hover:bg-indigo-700 font-semibold shadow-sm disabled:opacity-50">Generate Images</button>
</form>

<div id="warning" class="hidden mt-4 p-3 rounded-lg bg-yellow-50 text-yellow-800"></div>
<div id="error-message" class="hidden mt-4 p-3 rounded-lg bg-red-50 text-red-700"></div>

<section id="result-section" class="mt-8">
<div id="spinner" class="hidden flex flex-col items-center gap-3 py-8"><div class="loader"></div><span class="text-gray-600">Generating images...</span></div>
<p id="final-prompt" class="hidden mb-4 text-gray-700"></p>
<p id="info-message" class="hidden mb-4 text-gray-500"></p>
<div id="results" class="grid grid-cols-2 gap-4"></div>
</section>
</main>
</div>
<script>
const form = document.getElementById('generate-form');
const submitBtn = document.getElementById('submit-btn');
const spinner = document.getElementById('spinner');
const warning = document.getElementById('warning');
const errorMessage = document.getElementById('error-message');
const finalPrompt = document.getElementById('final-prompt');
const infoMessage = document.getElementById('info-message');
const results = document.getElementById('results');

document.getElementById('toggle-advanced').addEventListener('click', () => {
    document.getElementById('advanced-settings').classList.toggle('hidden');
});

document.querySelectorAll('input[type=range]').forEach((input) => {
    const label = document.querySelector('[data-value-for="' + input.id + '"]');
    input.addEventListener('input', () => { label.textContent = input.value; });
});

function show(el, text) {
    el.textContent = text;
    el.classList.remove('hidden');
}

function hide(el) {
    el.textContent = '';
    el.classList.add('hidden');
}

function renderImage(img) {
    const cell = document.createElement('div');
    cell.className = 'result-cell border rounded-lg p-3 bg-gray-50';

    if (img.error) {
        const p = document.createElement('p');
        p.className = 'text-red-600 text-sm';
        p.textContent = 'Error loading image ' + (img.index + 1) + ': ' + img.error;
        cell.appendChild(p);
        return cell;
    }

    const image = document.createElement('img');
    image.src = 'data:' + img.type + ';base64,' + img.data;
    image.alt = 'Generated Image ' + (img.index + 1);
    cell.appendChild(image);

    const caption = document.createElement('p');
    caption.className = 'text-sm text-gray-600 mt-2 text-center';
    caption.textContent = 'Generated Image ' + (img.index + 1);
    cell.appendChild(caption);

    const link = document.createElement('a');
    link.href = img.url;
    link.target = '_blank';
    link.rel = 'noopener';
    link.className = 'block text-center text-indigo-600 hover:underline text-sm';
    link.textContent = 'Download Image';
    cell.appendChild(link);

    return cell;
}

form.addEventListener('submit', async (event) => {
    event.preventDefault();
    [warning, errorMessage, finalPrompt, infoMessage].forEach(hide);
    results.innerHTML = '';

    if (document.getElementById('prompt').value.trim() === '') {
        show(warning, 'Please enter a prompt first!');
        return;
    }

    submitBtn.disabled = true;
    spinner.classList.remove('hidden');

    try {
        const response = await fetch('/generate', {
            method: 'POST',
            body: new URLSearchParams(new FormData(form)),
        });
        const data = await response.json();

        if (data.finalPrompt) {
            show(finalPrompt, 'Final prompt: ' + data.finalPrompt);
        }
        if (data.message) {
            show(infoMessage, data.message);
        }
        if (!response.ok) {
            show(response.status === 400 ? warning : errorMessage, data.error || ('HTTP ' + response.status));
            return;
        }

        (data.images || []).forEach((img) => results.appendChild(renderImage(img)));
    } catch (err) {
        console.error(err);
        show(errorMessage, 'Error: ' + err.message);
    } finally {
        spinner.classList.add('hidden');
        submitBtn.disabled = false;
    }
});
</script>
</body>
</html>`
