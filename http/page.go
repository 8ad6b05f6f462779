package http

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; background: #f8f9fa; margin: 40px; }
.container { max-width: 900px; margin: auto; background: #fff; padding: 24px; border-radius: 10px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
.columns { display: flex; gap: 32px; }
.column { flex: 1; }
label { display: block; margin-top: 12px; font-weight: bold; }
input[type=number], select { width: 100%; padding: 6px; }
input[type=range] { width: 85%; }
button { margin-top: 20px; background: #007bff; color: #fff; border: none; padding: 10px 18px; border-radius: 5px; cursor: pointer; }
.banner { padding: 12px; border-radius: 6px; margin-top: 16px; }
.error { background: #f8d7da; color: #721c24; }
.success { background: #d4edda; color: #155724; }
.info { background: #d1ecf1; color: #0c5460; }
.warning { background: #fff3cd; color: #856404; }
progress { width: 100%; height: 18px; }
#live { color: #6c757d; margin-top: 8px; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
{{if .Halted}}
<div class="banner error">{{.Error}}</div>
{{else}}
<p>Predicts a student's GPA from demographics, study habits and parental involvement. Fill in the details and press <b>Predict Student GPA</b>.</p>
<form method="post" action="/" id="predict-form">
<div class="columns">
{{range .Sections}}
<div class="column">
<h3>{{.Name}}</h3>
{{range $f := .Fields}}
<label for="{{$f.Key}}">{{$f.Label}}</label>
{{if eq (printf "%s" $f.Control) "number"}}
<input type="number" id="{{$f.Key}}" name="{{$f.Key}}" min="{{$f.Range.Min}}" max="{{$f.Range.Max}}" value="{{$f.Value}}">
{{else if eq (printf "%s" $f.Control) "slider"}}
<input type="range" id="{{$f.Key}}" name="{{$f.Key}}" min="{{$f.Range.Min}}" max="{{$f.Range.Max}}" value="{{$f.Value}}" oninput="this.nextElementSibling.value=this.value">
<output>{{$f.Value}}</output>
{{else if eq (printf "%s" $f.Control) "select"}}
<select id="{{$f.Key}}" name="{{$f.Key}}">
{{range $f.Choices}}<option value="{{.Code}}"{{if eq .Code $f.Value}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
{{else}}
{{range $f.Choices}}<input type="radio" name="{{$f.Key}}" value="{{.Code}}"{{if eq .Code $f.Value}} checked{{end}}> {{.Label}} {{end}}
{{end}}
{{end}}
</div>
{{end}}
</div>
<button type="submit">Predict Student GPA</button>
<div id="live"></div>
</form>
{{if .Error}}<div class="banner error">{{.Error}}</div>{{end}}
{{with .Result}}
<hr>
<div class="banner success"><h2>Predicted GPA: {{.GPAText}}</h2></div>
<progress value="{{.Display}}" max="1">{{$.Percent}}%</progress>
{{if .Celebrate}}<div class="banner info">🎈 {{.Message}}</div>
{{else if .Warn}}<div class="banner warning">{{.Message}}</div>
{{else}}<div class="banner info">{{.Message}}</div>{{end}}
{{end}}
<script>
(function () {
  var form = document.getElementById("predict-form");
  var live = document.getElementById("live");
  if (!form || !window.WebSocket) { return; }
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(scheme + location.host + "/api/ws/predict");
  function send() {
    if (socket.readyState !== WebSocket.OPEN) { return; }
    var values = {};
    new FormData(form).forEach(function (v, k) { values[k] = Number(v); });
    socket.send(JSON.stringify(values));
  }
  socket.onopen = send;
  socket.onmessage = function (event) {
    var reply = JSON.parse(event.data);
    live.textContent = reply.error ? reply.error : "Live estimate: " + reply.gpa_text + " (" + reply.tier + ")";
  };
  form.addEventListener("input", send);
})();
</script>
{{end}}
<hr>
<small>Machine Learning GPA Predictor</small>
</div>
</body>
</html>
`
